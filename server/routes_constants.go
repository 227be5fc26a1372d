package server

const (
	RouteRegister      = "/api/register"
	RouteRegisterAdmin = "/api/admin"
	RouteLogin         = "/api/login"
	RouteLogout        = "/api/logout"

	RouteUsers = "/api/users"
	RouteUser  = "/api/users/{username}"

	RouteGroups       = "/api/groups"
	RouteGroup        = "/api/groups/{name}"
	RouteGroupInsert  = "/api/groups/{name}/insert"
	RouteGroupRemove  = "/api/groups/{name}/remove"
	RouteGroupReports = "/api/groups/{name}/transactions"

	RouteCategories = "/api/categories"
	RouteCategory   = "/api/categories/{type}"

	RouteUserTransactions = "/api/users/{username}/transactions"
	RouteUserTransaction  = "/api/users/{username}/transactions/{id}"
	RouteTransactions     = "/api/transactions"
)

// Cookie names are part of the wire contract with API clients.
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)
