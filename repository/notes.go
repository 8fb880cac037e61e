package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"notable/model"
	"notable/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNoteNotFound = errors.New("note not found")

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("notes"),
	}
}

// NoteCountByUser is one row of the per-owner aggregation.
type NoteCountByUser struct {
	UserID   string    `bson:"_id"`
	Count    int64     `bson:"count"`
	LastNote time.Time `bson:"last_note"`
}

// CreateNote creates a new note
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	_, err := r.MongoCollection.InsertOne(ctx, note)
	return err
}

// GetUserNotes retrieves all notes owned by a user, newest first
func (r *NotesRepo) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote retrieves a specific note. The owner filter is part of the query,
// so a note owned by someone else is indistinguishable from a missing one.
func (r *NotesRepo) GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": noteID, "user_id": userID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// UpdateNote applies the given field set in one filtered update, atomic
// against a concurrent delete of the same note.
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID string, userID string, fields bson.M) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	fields["updated_at"] = time.Now()

	filter := bson.M{
		"_id":     noteID,
		"user_id": userID,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return &updated, nil
}

// DeleteNote hard-deletes a specific note
func (r *NotesRepo) DeleteNote(ctx context.Context, noteID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     noteID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// DeleteUserNotes removes every note owned by the user (account deletion)
func (r *NotesRepo) DeleteUserNotes(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// CountNotes counts all notes across all users
func (r *NotesRepo) CountNotes(ctx context.Context) (int64, error) {
	timer := utils.TrackDBOperation("count", "notes")
	defer timer.ObserveDuration()

	return r.MongoCollection.CountDocuments(ctx, bson.M{})
}

// CountPerUser groups notes by owner with note count and latest creation
// time, most notes first. Only owners with at least one note appear.
func (r *NotesRepo) CountPerUser(ctx context.Context) ([]NoteCountByUser, error) {
	timer := utils.TrackDBOperation("aggregate", "notes")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":       "$user_id",
			"count":     bson.M{"$sum": 1},
			"last_note": bson.M{"$max": "$created_at"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := []NoteCountByUser{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// CountPerDay groups notes created since the given instant by calendar
// date in the given timezone, ascending. Days without notes are absent.
func (r *NotesRepo) CountPerDay(ctx context.Context, since time.Time, timezone string) ([]model.DailyNoteCount, error) {
	timer := utils.TrackDBOperation("aggregate", "notes")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"created_at": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$created_at",
				"timezone": timezone,
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := []model.DailyNoteCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
