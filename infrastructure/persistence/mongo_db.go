package persistence

import (
	"fmt"
	"net/url"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewMongoDb creates a MongoDB client. The caller pings it before use.
func NewMongoDb(host, port, user, password, name string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(mongoURI(host, port, user, password, name)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	return client, nil
}

func mongoURI(host, port, user, password, name string) string {
	u := &url.URL{Scheme: "mongodb", Host: fmt.Sprintf("%s:%s", host, port), Path: "/"}
	if user != "" {
		u.User = url.UserPassword(user, password)
		q := url.Values{}
		q.Set("authSource", "admin")
		u.RawQuery = q.Encode()
	}
	if name != "" {
		u.Path = "/" + name
	}
	return u.String()
}
