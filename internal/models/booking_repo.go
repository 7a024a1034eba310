package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bikebay/server/internal/apperr"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBookingsByRenter(ctx context.Context, renterID uuid.UUID) ([]*BookingView, error)
	ListBookingsByBikes(ctx context.Context, bikeIDs []uuid.UUID) ([]*BookingView, error)
	ListAllBookings(ctx context.Context) ([]*BookingView, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*Booking, error)
	HasActiveOverlap(ctx context.Context, bikeID uuid.UUID, start, end time.Time) (bool, error)
}

// bookingLookupStages joins the bike document and the renter's name onto
// each booking, mirroring populate('bike') + populate('user', 'name').
func bookingLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         BikesColName,
			"localField":   "bike_id",
			"foreignField": "_id",
			"as":           "bike_docs",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         UsersColName,
			"localField":   "renter_id",
			"foreignField": "_id",
			"as":           "renter_docs",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"bike": bson.M{"$arrayElemAt": bson.A{"$bike_docs", 0}},
			"renter_name": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$renter_docs.name", 0}},
				"",
			}},
		}}},
		{{Key: "$project", Value: bson.M{"bike_docs": 0, "renter_docs": 0}}},
	}
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DBName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("error inserting booking: %v", err)
	}

	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DBName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var booking Booking
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.CodeNotFound, "booking not found")
		}
		return nil, fmt.Errorf("error finding booking by ID: %v", err)
	}

	return &booking, nil
}

func (mdb *MongodbRepo) ListBookingsByRenter(ctx context.Context, renterID uuid.UUID) ([]*BookingView, error) {
	// Cancelled bookings stay in the store for the admin view but are
	// hidden from the renter's own listing.
	return mdb.aggregateBookings(ctx, bson.M{
		"renter_id": renterID,
		"status":    bson.M{"$ne": BookingStatusCancelled},
	})
}

func (mdb *MongodbRepo) ListBookingsByBikes(ctx context.Context, bikeIDs []uuid.UUID) ([]*BookingView, error) {
	if len(bikeIDs) == 0 {
		return []*BookingView{}, nil
	}
	return mdb.aggregateBookings(ctx, bson.M{
		"bike_id": bson.M{"$in": bikeIDs},
		"status":  bson.M{"$ne": BookingStatusCancelled},
	})
}

func (mdb *MongodbRepo) ListAllBookings(ctx context.Context) ([]*BookingView, error) {
	return mdb.aggregateBookings(ctx, bson.M{})
}

func (mdb *MongodbRepo) aggregateBookings(ctx context.Context, match bson.M) ([]*BookingView, error) {
	col, err := mdb.GetCollection(ctx, DBName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}, bookingLookupStages()...)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating bookings: %v", err)
	}
	defer cursor.Close(ctx)

	bookings := []*BookingView{}
	for cursor.Next(ctx) {
		var booking BookingView
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, &booking)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return bookings, nil
}

func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DBName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	var updated Booking
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.CodeNotFound, "booking not found")
		}
		return nil, fmt.Errorf("error updating booking status: %v", err)
	}

	return &updated, nil
}

// HasActiveOverlap reports whether any non-cancelled booking for the bike
// intersects the half-open interval [start, end).
func (mdb *MongodbRepo) HasActiveOverlap(ctx context.Context, bikeID uuid.UUID, start, end time.Time) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, BookingColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"bike_id":    bikeID,
		"status":     bson.M{"$ne": BookingStatusCancelled},
		"start_date": bson.M{"$lt": end},
		"end_date":   bson.M{"$gt": start},
	}

	count, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error counting overlapping bookings: %v", err)
	}

	return count > 0, nil
}
