package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"
	RouteMe       = RouteAuth + "/me"

	RouteUsers       = RouteApiV1 + "/users"
	RouteUser        = RouteUsers + "/:user_id"
	RouteUserUploads = RouteUser + "/uploads"

	RouteUploads               = RouteApiV1 + "/uploads"
	RouteUpload                = RouteUploads + "/:upload_id"
	RouteUploadAnalyze         = RouteUpload + "/analyze"
	RouteUploadValidateDescrip = RouteUpload + "/validate-description"

	RouteTwitterData = RouteApiV1 + "/twitter/data"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
