package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"primeproperties/access"
	"primeproperties/models"
	"primeproperties/store"
	"primeproperties/utils"
)

type UserController struct {
	users UserStore
}

func NewUserController(users UserStore) *UserController {
	return &UserController{users: users}
}

func validateRegistration(req *models.RegisterRequest) error {
	var fields []string
	if req.Email == "" {
		fields = append(fields, "email")
	}
	if len(req.Password) < 6 {
		fields = append(fields, "password")
	}
	if req.Name == "" {
		fields = append(fields, "name")
	}
	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}
	return nil
}

func (uc *UserController) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := validateRegistration(&req); err != nil {
		return respondError(c, err, "")
	}

	_, err := uc.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return c.JSON(http.StatusConflict, map[string]string{
			"message": "User with this email already exists",
		})
	}
	if !errors.Is(err, store.ErrNotFound) {
		return respondError(c, err, "")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return respondError(c, err, "")
	}

	// Admins are provisioned out of band; self-registration only hands
	// out the agent and user roles.
	role := access.RoleUser
	if access.ParseRole(req.Role) == access.RoleAgent {
		role = access.RoleAgent
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     req.Email,
		Password:  hashedPassword,
		Name:      req.Name,
		Phone:     req.Phone,
		Photo:     req.Photo,
		Company:   req.Company,
		Role:      string(role),
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.users.Insert(ctx, &user); err != nil {
		return respondError(c, err, "")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusCreated, models.LoginResponse{Token: token, User: user})
}

func (uc *UserController) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return unauthorized(c, "Invalid email or password")
		}
		return respondError(c, err, "")
	}

	if !user.IsActive {
		return unauthorized(c, "Account is deactivated")
	}
	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return unauthorized(c, "Invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}

// Me returns the authenticated user's record.
func (uc *UserController) Me(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return unauthorized(c, "Not authenticated")
	}

	user, err := uc.users.FindByID(c.Request().Context(), caller.ID)
	if err != nil {
		return respondError(c, err, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

// GetProfile returns a user's public profile, the subset the listing join
// exposes.
func (uc *UserController) GetProfile(c echo.Context) error {
	user, err := uc.users.FindByIDHex(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "User not found")
	}
	return c.JSON(http.StatusOK, user.Profile())
}
