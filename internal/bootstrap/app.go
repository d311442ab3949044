package bootstrap

import (
	"insuredevents/internal/bootstrap/config"
	"insuredevents/internal/infrastructure/httpapi"
	"insuredevents/internal/ports"
	"insuredevents/internal/usecase/insuredevents"
)

// App is what a command gets from the dependency graph.
type App struct {
	Config config.Config
	Cache  ports.Cache
	Client *httpapi.Client
	Facade *insuredevents.Facade
}

func provideApp(cfg config.Config, cache ports.Cache, client *httpapi.Client, facade *insuredevents.Facade) *App {
	return &App{
		Config: cfg,
		Cache:  cache,
		Client: client,
		Facade: facade,
	}
}
