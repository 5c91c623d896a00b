package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")

	// Unauthorized 401
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	AuthorizationEmpty   = failed(4404, "Authorization is empty")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")
	TokenFormatIncorrect = failed(4408, "Token format is incorrect")

	// BadRequest 400
	BadRequest       = failed(4000, "Bad request")
	ValidationFailed = failed(4001, "Validation failed")
	NotFound         = failed(4004, "Not found")

	// Forbidden 403
	Forbidden         = failed(4030, "Forbidden")
	PermissionDenied  = failed(4031, "Permission denied")
	MissingDomain     = failed(4032, "No domain selected")
	OutOfDomain       = failed(4033, "Target belongs to another domain")
	InsufficientLevel = failed(4034, "Role level is insufficient")
	AdminOnly         = failed(4035, "Only a system admin may access")

	// Conflict 409
	AlreadyExists  = failed(4091, "Record already exists")
	AlreadyGranted = failed(4092, "Association already granted")
	NotGranted     = failed(4093, "Association not granted")

	InternalError     = failed(5000, "Internal error, please contact the administrator")
	TransactionFailed = failed(5002, "Transaction failed")

	UserNotExist                  = failed(4041, "User does not exist")
	UserAlreadyExist              = failed(4042, "User already exists")
	UserIncorrectPassword         = failed(4043, "User incorrect password")
	UserDisabled                  = failed(4044, "User is disabled")
	UsernameArePasswordIsRequired = failed(4045, "Username and password are required")
)

var (
	Success = success(200, "Request Success")
)

func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
