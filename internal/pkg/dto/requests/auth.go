package requests

type RegisterUser struct {
	Email          string `json:"email" validate:"required,email"`
	Username       string `json:"username" validate:"required,alphanum,min=4,max=20"`
	Fullname       string `json:"fullname" validate:"required,max=100"`
	Password       string `json:"password" validate:"password"`
	RetypePassword string `json:"retype_password" validate:"required"`
}

type LoginUser struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
