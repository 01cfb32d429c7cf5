package user

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	DisplayName  string `json:"displayName" db:"display_name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"` // never expose hash in JSON
	Role         string `json:"role" db:"role"`

	// Password is the inbound plaintext on create only. It is hashed by the
	// store and never persisted or read back.
	Password *string `json:"-" db:"-"`
}

type RegisterRequest struct {
	Name            string `json:"name" binding:"required,max=120"`
	DisplayName     string `json:"displayName" binding:"required,max=120"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type UpdateRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	DisplayName string `json:"displayName" binding:"required,max=120"`
	Email       string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// NewFromRegisterRequest always yields a plain user. Admins come from the
// startup seed only.
func NewFromRegisterRequest(req RegisterRequest) User {
	password := req.Password

	return User{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Role:        RoleUser,
		Password:    &password,
	}
}

// NewFromUpdateRequest leaves Role empty; the service keeps the stored one.
func NewFromUpdateRequest(id int, req UpdateRequest) User {
	return User{
		ID:          id,
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	}
}
