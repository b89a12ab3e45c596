// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the region-survey API.

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Region catalog (public):

	GET /regions/cities?option=N
	GET /regions/cities/{id}/districts
	GET /regions/districts/{id}/neighborhoods

Survey (public):

	GET  /survey/existing?name=&cohort=
	POST /survey/regions/check
	POST /survey/submissions
	POST /survey/submissions/confirm

Admin (POST /admin/login, then Authorization: Bearer <token>):

	GET    /admin/dashboard
	GET    /admin/responses
	GET    /admin/cohorts/{cohort}/responses
	PUT    /admin/responses/{id}/regions
	DELETE /admin/responses/{id}
	POST   /admin/regions/remove
	POST   /admin/cohorts/{cohort}/archive
	GET    /admin/regions/status
	POST   /admin/regions/status/toggle
	POST   /admin/regions/status/bulk
	GET    /admin/regions/export.csv
	GET    /admin/regions/export.xlsx
*/
package router
