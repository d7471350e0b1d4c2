package vaccinations

import (
	"context"
	"time"

	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VaccinationMongoRepository struct {
	Collection *mongo.Collection
}

func NewVaccinationMongoRepository(db *mongo.Client, dbName string) contracts.VaccinationRepository {
	return &VaccinationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionVaccinations),
	}
}

func (r *VaccinationMongoRepository) Insert(ctx context.Context, reservation *models.VaccinationReservation) (string, error) {
	result, err := r.Collection.InsertOne(ctx, reservation)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *VaccinationMongoRepository) FindByID(ctx context.Context, reservationID string) (*models.VaccinationReservation, error) {
	objectID, err := primitive.ObjectIDFromHex(reservationID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var reservation models.VaccinationReservation
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&reservation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &reservation, nil
}

func (r *VaccinationMongoRepository) FindByPatient(ctx context.Context, patientID string, page, pageSize int) ([]models.VaccinationReservation, int, error) {
	filter := bson.M{"patient_id": patientID}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var reservations []models.VaccinationReservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return reservations, int(total), nil
}

func (r *VaccinationMongoRepository) UpdateStatusIf(ctx context.Context, reservationID string, expected []models.ReservationStatus, next models.ReservationStatus) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(reservationID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": expected},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     next,
			"updated_at": time.Now(),
		},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}
