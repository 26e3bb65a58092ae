package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Dir               string `usage:"data directory"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
	EnableCompression bool   `usage:"compress HTTP responses"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr: ":8080",
		Dir:      "data",
	}
}
