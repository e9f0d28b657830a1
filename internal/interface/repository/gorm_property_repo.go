package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"booking-service/internal/domain/entity"
	"booking-service/internal/domain/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormPropertyRepository implements the PropertyRepository interface
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GORM property repository
func NewGormPropertyRepository(db *gorm.DB) repository.PropertyRepository {
	return &GormPropertyRepository{
		db: db,
	}
}

// Properties GORM model for the property catalogue
type Properties struct {
	ID            string         `gorm:"primaryKey;size:64"`
	Name          string         `gorm:"column:name"`
	Address       string         `gorm:"column:address"`
	PricePerNight float64        `gorm:"column:price_per_night"`
	Details       datatypes.JSON `gorm:"column:details"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (Properties) TableName() string {
	return "properties"
}

// GetSnapshot loads the pricing and display data of one property
func (r *GormPropertyRepository) GetSnapshot(ctx context.Context, id string) (*entity.PropertySnapshot, error) {
	var property Properties
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&property)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, entity.ErrPropertyNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return property.toSnapshot()
}

// toSnapshot converts the GORM model to a domain snapshot. An empty details column leaves Details nil.
func (p Properties) toSnapshot() (*entity.PropertySnapshot, error) {
	snapshot := &entity.PropertySnapshot{
		Name:          p.Name,
		Address:       p.Address,
		PricePerNight: p.PricePerNight,
	}
	if len(p.Details) == 0 || string(p.Details) == "null" {
		return snapshot, nil
	}
	var details entity.PropertyDetails
	if err := json.Unmarshal(p.Details, &details); err != nil {
		return nil, err
	}
	snapshot.Details = &details
	return snapshot, nil
}
