package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"retail-sense/internal/models"
)

// ErrBadCredentials is returned by Authenticate for an unknown email or a
// wrong password alike.
var ErrBadCredentials = errors.New("invalid email or password")

type UserInput struct {
	UserName string `json:"UserName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
}

type UserUpdate struct {
	UserName string  `json:"UserName"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Mobile   string  `json:"mobile"`
	Role     string  `json:"role"`
}

// NormalizeRole maps anything other than an admin role to customer.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case models.RoleAdmin, "manager":
		return models.RoleAdmin
	default:
		return models.RoleCustomer
	}
}

func CreateUser(ctx context.Context, db *gorm.DB, in UserInput) (*models.User, error) {
	var p problems
	p.addf(strings.TrimSpace(in.UserName) == "", "UserName is required")
	p.addf(!emailRe.MatchString(strings.TrimSpace(in.Email)), "email must be a valid email address")
	p.addf(len(in.Password) < 6, "password must be at least 6 characters")
	p.addf(len(in.Password) > 72, "password must be at most 72 characters")
	p.addf(!mobileRe.MatchString(in.Mobile), "Mobile number must be exactly 10 digits")
	if err := p.err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		UserName: strings.TrimSpace(in.UserName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hash),
		Address:  in.Address,
		Mobile:   in.Mobile,
		Role:     NormalizeRole(in.Role),
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, uniqueViolation(err)
	}
	return &user, nil
}

func ListUsers(ctx context.Context, db *gorm.DB) ([]models.User, error) {
	users := []models.User{}
	err := db.WithContext(ctx).Order("user_id ASC").Find(&users).Error
	return users, err
}

// GetUser accepts a document "_id" or a numeric userID.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	q := db.WithContext(ctx)
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		q = q.Where("user_id = ?", n)
	} else {
		q = q.Where("id = ?", id)
	}

	var user models.User
	if err := q.Take(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func UpdateUser(ctx context.Context, db *gorm.DB, id string, upd UserUpdate) (*models.User, error) {
	var p problems
	p.addf(strings.TrimSpace(upd.UserName) == "", "UserName is required")
	p.addf(!mobileRe.MatchString(upd.Mobile), "Mobile number must be exactly 10 digits")
	if upd.Email != nil {
		p.addf(!emailRe.MatchString(strings.TrimSpace(*upd.Email)), "email must be a valid email address")
	}
	if err := p.err(); err != nil {
		return nil, err
	}

	user, err := GetUser(ctx, db, id)
	if err != nil {
		return nil, err
	}

	user.UserName = strings.TrimSpace(upd.UserName)
	user.Mobile = upd.Mobile
	user.Role = NormalizeRole(upd.Role)
	if upd.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.Address != nil {
		user.Address = *upd.Address
	}

	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, uniqueViolation(err)
	}
	return user, nil
}

func DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	user, err := GetUser(ctx, db, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(user).Error
}

// Authenticate checks an email and password pair.
func Authenticate(ctx context.Context, db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return &user, nil
}
