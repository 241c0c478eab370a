package database

import (
	"context"
	"fmt"

	"wishbox/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// DB wraps the Firestore client handle that the repositories share.
type DB struct {
	Client *firestore.Client
}

// Connect initializes the Firebase app and opens a Firestore client.
func Connect(ctx context.Context, cfg config.Config) (*DB, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("database: error initializing firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("database: error getting Firestore client: %w", err)
	}

	return &DB{Client: client}, nil
}

// Close releases the Firestore client.
func (db *DB) Close() error {
	if db == nil || db.Client == nil {
		return nil
	}
	return db.Client.Close()
}
