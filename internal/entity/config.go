package entity

// Config is the singleton service record written once at bootstrap.
type Config struct {
	Admin string `json:"admin"`
}
