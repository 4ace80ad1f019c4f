package initializers

import (
	"log"

	"github.com/craftmint/craftmint-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Customization{},
		&models.Coupon{},
		&models.CheckoutIntent{},
		&models.Order{},
		&models.OrderItem{},
		&models.PrintOrder{},
		&models.PrintFile{},
	)
	log.Println("Database synced successfully.")
}
