package payments

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

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentMongoRepository(db *mongo.Client, dbName string) contracts.PaymentRepository {
	return &PaymentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPayments),
	}
}

func (r *PaymentMongoRepository) Insert(ctx context.Context, payment *models.Payment) (string, error) {
	result, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *PaymentMongoRepository) FindByOrderNo(ctx context.Context, orderNo string) (*models.Payment, error) {
	var payment models.Payment
	err := r.Collection.FindOne(ctx, bson.M{"order_no": orderNo}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *PaymentMongoRepository) FindLatestByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	var payment models.Payment
	opts := options.FindOne().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	err := r.Collection.FindOne(ctx, bson.M{"appointment_id": appointmentID}, opts).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *PaymentMongoRepository) MarkCompletedIfPending(ctx context.Context, appointmentID string, approvedAt time.Time) (bool, error) {
	filter := bson.M{
		"appointment_id": appointmentID,
		"status":         models.PaymentPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":      models.PaymentCompleted,
			"approved_at": approvedAt,
		},
	}

	result, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *PaymentMongoRepository) MarkCancelledIfPending(ctx context.Context, appointmentID string) (bool, error) {
	filter := bson.M{
		"appointment_id": appointmentID,
		"status":         models.PaymentPending,
	}
	update := bson.M{
		"$set": bson.M{"status": models.PaymentCancelled},
	}

	result, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}
