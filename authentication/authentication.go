package authentication

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

func jwtKey() []byte {
	if key := os.Getenv("JWT_SECRET"); key != "" {
		return []byte(key)
	}
	return []byte("secretKey")
}

// GenerateToken issues a signed token carrying the user's id and role
func GenerateToken(user models.User) (string, error) {
	claims := &models.UserClaims{
		UserID: user.UserID,
		Role:   user.Role,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey())
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// AuthenticateUser parses and validates a signed token
func AuthenticateUser(signedStringToken string) (*models.UserClaims, error) {
	var userClaims models.UserClaims
	token, err := jwt.ParseWithClaims(signedStringToken, &userClaims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil {
		return nil, err
	}

	//check the token is valid
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok {
		return nil, errors.New("couldn't parse claims")
	}
	return claims, nil
}

func roleMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from the request header
		tokenString := c.GetHeader("Authorization")

		// Check if token exists
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "User Authorization is missing"})
			return
		}

		// Trim the token to get the actual token string
		authHeader := strings.Replace(tokenString, "Bearer ", "", 1)
		claims, err := AuthenticateUser(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": err.Error()})
			return
		}

		if claims.Role != role {
			c.AbortWithStatusJSON(403, gin.H{"error": "Access restricted to " + role + " accounts"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
	}
}

func AdminAuthMiddleware() gin.HandlerFunc {
	return roleMiddleware(models.RoleAdmin)
}

func DoctorAuthMiddleware() gin.HandlerFunc {
	return roleMiddleware(models.RoleDoctor)
}

func PatientAuthMiddleware() gin.HandlerFunc {
	return roleMiddleware(models.RolePatient)
}
