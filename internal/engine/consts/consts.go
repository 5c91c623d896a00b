package consts

const (
	// DETAIL is the locals key a handler sets to return payload data.
	DETAIL = "detail"
	// OPERATION is the locals key a handler sets for payload-less success.
	OPERATION = "operation"
	// AUTH is the locals key carrying the decoded token snapshot.
	AUTH = "auth"

	// UserTokenKey prefixes the redis key holding a user's active session token.
	UserTokenKey = "warden:user:token:"
	// UserInfoKey prefixes the redis key holding a user's cached profile.
	UserInfoKey = "warden:user:info:"
)

const (
	// SysRoleAdmin marks a system administrator account.
	SysRoleAdmin = "admin"
	// SysRoleUser marks a regular account.
	SysRoleUser = "user"
)

const (
	// FromQueryKey is the query parameter selecting the target domain
	// on register, login and connect.
	FromQueryKey = "from"
)
