// Package directory resolves user ids against the hospital user store in
// MongoDB. The realtime layer only reads the fields it needs for identity;
// the CRUD layer owns the schema.
package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wardpulse/realtime-gateway/internal/auth"
)

const (
	usersCollection = "users"
	lookupTimeout   = 5 * time.Second
)

type userDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	Role       string             `bson:"role"`
	Department string             `bson:"department"`
	IsActive   bool               `bson:"isActive"`
}

// Mongo implements auth.Directory against a users collection.
type Mongo struct {
	users *mongo.Collection
}

// Connect opens a Mongo client and returns a directory over the users
// collection of dbName.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	closer := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithField("error", err).Warn("MongoDB disconnect failed")
		}
	}
	return &Mongo{users: client.Database(dbName).Collection(usersCollection)}, closer, nil
}

// Lookup returns the user for userID, or auth.ErrUserNotFound.
func (m *Mongo) Lookup(ctx context.Context, userID string) (auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return auth.User{}, auth.ErrUserNotFound
	}

	var doc userDoc
	err = m.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return auth.User{}, auth.ErrUserNotFound
	}
	if err != nil {
		return auth.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return auth.User{
		ID:         doc.ID.Hex(),
		Role:       doc.Role,
		Department: doc.Department,
		IsActive:   doc.IsActive,
	}, nil
}
