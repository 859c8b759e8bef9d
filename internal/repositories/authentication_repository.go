package repositories

import (
	"gorm.io/gorm"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/utils"
)

type AuthenticationRepository struct {
	db *gorm.DB
}

func NewAuthenticationRepository(db *gorm.DB) *AuthenticationRepository {
	return &AuthenticationRepository{
		db: db,
	}
}

func (ar *AuthenticationRepository) CreateUser(user *models.User) (*models.User, []error) {
	var errors []error
	result := ar.db.Create(user)
	if result.Error != nil {
		errors = append(errors, result.Error)
		return nil, errors
	}
	if result.RowsAffected == 0 {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	return user, nil
}

func (ar *AuthenticationRepository) CheckIfUserExists(email string) *models.User {
	var user models.User
	result := ar.db.Where("email = ?", email).First(&user)
	if result.Error == nil && result.RowsAffected > 0 {
		return &user
	}
	return nil
}

func (ar *AuthenticationRepository) Login(login *models.LoginRequestBody) (*models.User, []error) {
	var errors []error
	user := ar.CheckIfUserExists(login.Email)
	if user == nil {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	if err := utils.CompareHashAndPassword(user.PasswordHash, login.Password); err != nil {
		errors = append(errors, errs.ErrWrongPassword)
		return nil, errors
	}
	return user, nil
}

func (ar *AuthenticationRepository) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	result := ar.db.Where("id = ?", userID).First(&user)
	if result.Error != nil {
		return nil, errs.ErrUserNotFound
	}
	return &user, nil
}

// GetUsersByIDs resolves profiles in one query, keyed by id. Missing ids are
// simply absent from the map; callers fall back to the default display name.
func (ar *AuthenticationRepository) GetUsersByIDs(userIDs []uint) (map[uint]models.User, error) {
	users := make(map[uint]models.User, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}
	var rows []models.User
	if err := ar.db.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, user := range rows {
		users[user.ID] = user
	}
	return users, nil
}

func (ar *AuthenticationRepository) GetAllUsersWithPagination(page, size, offset int) (*models.GetUsersResponse, []error) {
	var errors []error
	var users []models.User
	var total int64

	if err := ar.db.Model(&models.User{}).Count(&total).Error; err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	if err := ar.db.Offset(offset).Limit(size).Find(&users).Error; err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	userResponses := make([]*models.UserResponse, 0, len(users))
	for i := range users {
		userResponses = append(userResponses, users[i].ToUserResponse())
	}

	return &models.GetUsersResponse{
		Users: userResponses,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

func (ar *AuthenticationRepository) UpdateUserProfilePhoto(userID uint, url string) []error {
	var errors []error
	result := ar.db.Model(&models.User{}).Where("id = ?", userID).Update("profile_photo", url)
	if result.Error != nil {
		errors = append(errors, result.Error)
		return errors
	}
	if result.RowsAffected == 0 {
		errors = append(errors, errs.ErrUserNotFound)
		return errors
	}
	return nil
}
