package config

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

// The exchange endpoint is called from browser code on any origin.
var allowedOrigins = AllowedOrigins{"*": nullValue{}}

func (Cors) GetAllowedOrigins() AllowedOrigins {
	return allowedOrigins
}

func (Cors) GetAllowedMethods() string {
	return "POST, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type"
}
