package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	DBName         = "bikebay"
	UsersColName   = "users"
	BikesColName   = "bikes"
	BookingColName = "bookings"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	col := mdb.mongodbClient.Database(dbName).Collection(colName)
	return col, nil
}

// EnsureIndexes creates the indexes the repositories rely on.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	users, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("error creating user indexes: %v", err)
	}

	bikes, err := mdb.GetCollection(ctx, DBName, BikesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	_, err = bikes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hoster_id", Value: 1}},
			Options: options.Index().SetName("hoster_id_idx"),
		},
		{
			Keys:    bson.D{{Key: "available", Value: 1}},
			Options: options.Index().SetName("available_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("error creating bike indexes: %v", err)
	}

	bookings, err := mdb.GetCollection(ctx, DBName, BookingColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	_, err = bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "renter_id", Value: 1}},
			Options: options.Index().SetName("renter_id_idx"),
		},
		// Compound index for overlap queries against a bike's active bookings
		{
			Keys: bson.D{
				{Key: "bike_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "start_date", Value: 1},
			},
			Options: options.Index().SetName("bike_status_start_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("error creating booking indexes: %v", err)
	}

	return nil
}
