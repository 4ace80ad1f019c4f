package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/craftmint/craftmint-api/initializers"
	"github.com/craftmint/craftmint-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user with this phone number already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid phone number or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgFailedToCreateCart    = "failed to create cart"
	msgUserCreated           = "User created successfully."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// authPhone returns the phone identity RequireAuth put on the context.
func authPhone(ctx *gin.Context) string {
	return ctx.GetString("phone")
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"phone":   user.Phone,
		"name":    user.Fullname,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByPhone(phone string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("phone = ?", phone).First(&user)
	return user, result.Error
}

func Signup(ctx *gin.Context) {
	var input struct {
		Fullname string `json:"fullname" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing models.User
	if result := initializers.DB.Where("phone = ?", input.Phone).Find(&existing); result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusConflict, msgUserAlreadyExists)
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Fullname: input.Fullname,
		Phone:    input.Phone,
		Email:    input.Email,
		Password: hashed,
		Role:     "customer",
	}

	if err := initializers.DB.Create(&user).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create user")
		return
	}

	// Every user owns exactly one cart, created up front.
	cart := models.Cart{Phone: user.Phone}
	if err := initializers.DB.Create(&cart).Error; err != nil {
		log.Println("Cart create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateCart)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": msgUserCreated,
		"id":      user.ID,
	})
}

func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByPhone(loginData.Phone)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, err := generateJWT(user)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"fullname": user.Fullname,
			"phone":    user.Phone,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
