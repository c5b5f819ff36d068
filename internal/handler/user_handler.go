package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stratify/internal/model"
	"stratify/internal/service"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest represents a user creation request.
type CreateUserRequest struct {
	Name  string `json:"Name" validate:"required,max=255"`
	Email string `json:"Email" validate:"required,email"`
	Role  string `json:"Role" validate:"max=50"`
}

// UpdateRoleRequest represents a role change request.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,max=50"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param role query string false "Role"
// @Success 200 {object} Response{data=[]model.User}
// @Failure 500 {object} errors.ErrorResponse
// @Router /user [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	q := newQuery(c)
	users, err := h.svc.List(c.Request().Context(), model.UserFilter{Role: q.str("role")})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=model.User}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User payload"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("Name", "Email"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreateUserRequest{Name: f.str("Name"), Email: f.str("Email"), Role: f.str("Role")}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	user := model.User{Name: req.Name, Email: req.Email, Role: req.Role}
	if err := h.svc.Create(c.Request().Context(), &user); err != nil {
		return fail(c, err)
	}
	return created(c, "User", "UserID", user.ID)
}

// UpdateUser godoc
// @Summary Update user
// @Description Accepts any of Name, Email, Role.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.svc.Update(c.Request().Context(), id, b); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("updated user %d", id)
	return done(c, "User updated successfully")
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/{id}/role [put]
func (h *UserHandler) UpdateUserRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("role"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := UpdateRoleRequest{Role: f.str("role")}
	if f.err != nil {
		return fail(c, f.err)
	}
	if req.Role != "" {
		if err := validate(c, &req); err != nil {
			return fail(c, err)
		}
	}

	if err := h.svc.UpdateRole(c.Request().Context(), id, req.Role); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("updated role for user %d", id)
	return done(c, "User role updated successfully")
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("deleted user %d", id)
	return done(c, "User deleted successfully")
}

// GetUserActivity godoc
// @Summary Get a user's activity log
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param startDate query string false "Earliest entry"
// @Param endDate query string false "Latest entry"
// @Success 200 {object} Response{data=[]model.UserActivity}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/{id}/activity [get]
func (h *UserHandler) GetUserActivity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	q := newQuery(c)
	createdAt := q.dateRange("startDate", "endDate")
	if q.err != nil {
		return fail(c, q.err)
	}

	activity, err := h.svc.Activity(c.Request().Context(), id, createdAt)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, activity)
}
