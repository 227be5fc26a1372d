package server

func (s *Server) initRoutes() {
	// Session lifecycle
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteRegisterAdmin, ChainMiddleware(s.RegisterAdminHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Users
	s.RegisterRouteHandler("GET "+RouteUsers, ChainMiddleware(s.ListUsersHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteUser, ChainMiddleware(s.GetUserHandler(), s.APIMiddleware()...))

	// Groups
	s.RegisterRouteHandler("POST "+RouteGroups, ChainMiddleware(s.CreateGroupHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteGroups, ChainMiddleware(s.ListGroupsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteGroup, ChainMiddleware(s.GetGroupHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PATCH "+RouteGroupInsert, ChainMiddleware(s.InsertGroupMembersHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PATCH "+RouteGroupRemove, ChainMiddleware(s.RemoveGroupMembersHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteGroup, ChainMiddleware(s.DeleteGroupHandler(), s.APIMiddleware()...))

	// Categories
	s.RegisterRouteHandler("POST "+RouteCategories, ChainMiddleware(s.CreateCategoryHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCategories, ChainMiddleware(s.ListCategoriesHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PATCH "+RouteCategory, ChainMiddleware(s.UpdateCategoryHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteCategory, ChainMiddleware(s.DeleteCategoryHandler(), s.APIMiddleware()...))

	// Transactions
	s.RegisterRouteHandler("POST "+RouteUserTransactions, ChainMiddleware(s.CreateTransactionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteUserTransactions, ChainMiddleware(s.ListUserTransactionsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteUserTransaction, ChainMiddleware(s.DeleteTransactionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteGroupReports, ChainMiddleware(s.ListGroupTransactionsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTransactions, ChainMiddleware(s.ListAllTransactionsHandler(), s.APIMiddleware()...))
}
