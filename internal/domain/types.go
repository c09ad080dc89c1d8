package domain

type (
	Email    = string
	Username = string
	Password = string

	UserId  = int64
	BoardId = int64
	CardId  = int64
)
