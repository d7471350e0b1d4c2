package notifications

import (
	"context"

	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationMongoRepository struct {
	Collection *mongo.Collection
}

func NewNotificationMongoRepository(db *mongo.Client, dbName string) contracts.NotificationRepository {
	return &NotificationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionNotifications),
	}
}

func (r *NotificationMongoRepository) Insert(ctx context.Context, notification *models.Notification) (string, error) {
	result, err := r.Collection.InsertOne(ctx, notification)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *NotificationMongoRepository) FindByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var notification models.Notification
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &notification, nil
}

func (r *NotificationMongoRepository) FindByRecipient(ctx context.Context, recipientID string, page, pageSize int) ([]models.Notification, int, error) {
	filter := bson.M{"recipient_id": recipientID}

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

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return notifications, int(total), nil
}

// FindUnseenByRecipient returns the recipient's notifications whose IDs are
// not in excludeIDs, oldest first. Hex strings that are not valid ObjectIDs
// are skipped rather than failing the whole poll.
func (r *NotificationMongoRepository) FindUnseenByRecipient(ctx context.Context, recipientID string, excludeIDs []string) ([]models.Notification, error) {
	excluded := make([]primitive.ObjectID, 0, len(excludeIDs))
	for _, id := range excludeIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		excluded = append(excluded, objectID)
	}

	filter := bson.M{"recipient_id": recipientID}
	if len(excluded) > 0 {
		filter["_id"] = bson.M{"$nin": excluded}
	}

	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return notifications, nil
}

func (r *NotificationMongoRepository) MarkRead(ctx context.Context, notificationID, recipientID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":          objectID,
		"recipient_id": recipientID,
	}
	update := bson.M{"$set": bson.M{"read": true}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}
