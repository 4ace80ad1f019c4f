package checkout

import (
	"context"
	"errors"

	"github.com/craftmint/craftmint-api/models"
	"gorm.io/gorm"
)

// Gorm-backed implementations of the orchestrator's store interfaces.

type GormCartStore struct {
	DB *gorm.DB
}

func (s GormCartStore) Items(ctx context.Context, phone string) ([]models.CartItem, error) {
	var cart models.Cart
	err := s.DB.WithContext(ctx).
		Where("phone = ?", phone).
		Preload("Items.Customization").
		Preload("Items").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (s GormCartStore) RemoveItem(ctx context.Context, phone string, cartItemID uint) error {
	var cart models.Cart
	if err := s.DB.WithContext(ctx).Where("phone = ?", phone).First(&cart).Error; err != nil {
		return err
	}
	return s.DB.WithContext(ctx).
		Where("id = ? AND cart_id = ?", cartItemID, cart.ID).
		Delete(&models.CartItem{}).Error
}

type GormOrderStore struct {
	DB *gorm.DB
}

func (s GormOrderStore) SaveOrder(ctx context.Context, order *models.Order) error {
	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (s GormOrderStore) FindByReceipt(ctx context.Context, receipt string) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Where("receipt = ?", receipt).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type GormIntentStore struct {
	DB *gorm.DB
}

func (s GormIntentStore) SaveIntent(ctx context.Context, intent *models.CheckoutIntent) error {
	return s.DB.WithContext(ctx).Create(intent).Error
}

func (s GormIntentStore) FindIntent(ctx context.Context, receipt string) (*models.CheckoutIntent, error) {
	var intent models.CheckoutIntent
	err := s.DB.WithContext(ctx).Where("receipt = ?", receipt).First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

type GormAddressStore struct {
	DB *gorm.DB
}

func (s GormAddressStore) Address(ctx context.Context, phone string, addressID uint) (*models.Address, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}

	var address models.Address
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, user.ID).
		First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

type GormCouponStore struct {
	DB *gorm.DB
}

func (s GormCouponStore) Coupons(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := s.DB.WithContext(ctx).Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}
