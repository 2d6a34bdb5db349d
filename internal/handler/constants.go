// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit routes.
	RouteSuffixEdit = "/edit"
	// RouteSuffixDelete is the suffix for delete routes.
	RouteSuffixDelete = "/delete"
	// RouteSuffixToggle is the suffix for toggle routes.
	RouteSuffixToggle = "/toggle"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteDashboard is the admin dashboard route.
	RouteDashboard = "/dashboard"

	// RouteArticles is the articles route.
	RouteArticles = "/articles"
	// RouteArticleSlug is the public article detail route pattern.
	RouteArticleSlug = "/article" + RouteParamSlug
	// RouteDefis is the défis admin route.
	RouteDefis = "/defis"
	// RouteSolidarite is the solidarity actions admin route.
	RouteSolidarite = "/solidarite"
	// RouteForum is the forum topics route.
	RouteForum = "/forum"
	// RouteNewsletter is the newsletter route.
	RouteNewsletter = "/newsletter"

	// RouteArticlesID is the articles ID route pattern.
	RouteArticlesID = RouteArticles + RouteParamID
	// RouteDefisID is the défis ID route pattern.
	RouteDefisID = RouteDefis + RouteParamID
	// RouteSolidariteID is the solidarity actions ID route pattern.
	RouteSolidariteID = RouteSolidarite + RouteParamID
	// RouteForumID is the forum topics ID route pattern.
	RouteForumID = RouteForum + RouteParamID
	// RouteNewsletterID is the newsletter ID route pattern.
	RouteNewsletterID = RouteNewsletter + RouteParamID
)

// Redirect targets for admin form submissions.
const (
	redirectAdmin           = "/admin"
	redirectLogin           = redirectAdmin + RouteLogin
	redirectDashboard       = redirectAdmin + RouteDashboard
	redirectAdminArticles   = redirectAdmin + RouteArticles
	redirectAdminDefis      = redirectAdmin + RouteDefis
	redirectAdminSolidarite = redirectAdmin + RouteSolidarite
	redirectAdminForum      = redirectAdmin + RouteForum
	redirectAdminNewsletter = redirectAdmin + RouteNewsletter
	redirectHome            = RouteRoot
)

// Session keys for flash messages.
const (
	sessionKeyFlash     = "flash"
	sessionKeyFlashType = "flash_type"
)

// Flash message types.
const (
	flashSuccessType = "success"
	flashErrorType   = "error"
	flashInfoType    = "info"
)
