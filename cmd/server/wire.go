// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"devlink_backend/internal/app"
	"devlink_backend/internal/config"
	"devlink_backend/internal/firebase"
	"devlink_backend/internal/github"
	"devlink_backend/internal/jobs"
	"devlink_backend/internal/platform/database"
	"devlink_backend/internal/platform/elasticsearch"
	"devlink_backend/internal/platform/logger"
	"devlink_backend/internal/profile"
	"devlink_backend/internal/shared"
	"devlink_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		elasticsearch.NewClient,
		provideCleanup,

		// Firebase Service
		firebase.NewFirebaseService,

		// Core User Services
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(shared.Service), new(*user.ServiceImplementation)),

		// Profile Module
		profile.NewGORMRepository,
		profile.NewService,
		profile.NewHandler,
		github.NewClient,
		wire.Bind(new(github.RepoFetcher), new(*github.Client)),
		jobs.NewProfileSearchSyncJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
