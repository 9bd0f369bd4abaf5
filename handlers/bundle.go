package handlers

import accountRepo "fixly/database/repository/account"

// HandlerBundle groups the wired handlers and the repositories the route
// middleware needs.
type HandlerBundle struct {
	AccountRepo accountRepo.AccountRepository

	Auth   *AuthHandler
	Jobs   *JobHandler
	Cancel *CancellationHandler
	Access *AccessHandler
	Admin  *AdminHandler
}
