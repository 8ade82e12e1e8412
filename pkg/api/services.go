package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const packageName = "eventbudget.v1"

// Fully-qualified service names.
const (
	AuthServiceName        = packageName + ".AuthService"
	EventServiceName       = packageName + ".EventService"
	ParticipantServiceName = packageName + ".ParticipantService"
	PaymentServiceName     = packageName + ".PaymentService"
)

// Procedure paths, used for routing and in interceptors.
const (
	AuthServiceRegisterProcedure                 = "/eventbudget.v1.AuthService/Register"
	AuthServiceLoginProcedure                    = "/eventbudget.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure           = "/eventbudget.v1.AuthService/GetCurrentUser"
	EventServiceCreateEventProcedure             = "/eventbudget.v1.EventService/CreateEvent"
	EventServiceGetEventProcedure                = "/eventbudget.v1.EventService/GetEvent"
	EventServiceListEventsProcedure              = "/eventbudget.v1.EventService/ListEvents"
	EventServiceUpdateEventProcedure             = "/eventbudget.v1.EventService/UpdateEvent"
	EventServiceDeleteEventProcedure             = "/eventbudget.v1.EventService/DeleteEvent"
	EventServiceGetEventBudgetProcedure          = "/eventbudget.v1.EventService/GetEventBudget"
	EventServiceCalculateBudgetProcedure         = "/eventbudget.v1.EventService/CalculateBudget"
	ParticipantServiceCreateParticipantProcedure = "/eventbudget.v1.ParticipantService/CreateParticipant"
	ParticipantServiceUpdateParticipantProcedure = "/eventbudget.v1.ParticipantService/UpdateParticipant"
	ParticipantServiceDeleteParticipantProcedure = "/eventbudget.v1.ParticipantService/DeleteParticipant"
	ParticipantServiceListParticipantsProcedure  = "/eventbudget.v1.ParticipantService/ListParticipants"
	PaymentServiceCreatePaymentProcedure         = "/eventbudget.v1.PaymentService/CreatePayment"
	PaymentServiceUpdatePaymentProcedure         = "/eventbudget.v1.PaymentService/UpdatePayment"
	PaymentServiceDeletePaymentProcedure         = "/eventbudget.v1.PaymentService/DeletePayment"
	PaymentServiceListPaymentsProcedure          = "/eventbudget.v1.PaymentService/ListPayments"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}

// AuthServiceHandler serves authentication and the current user.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	registerHandler := connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...)
	loginHandler := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	getCurrentUserHandler := connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			registerHandler.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		case AuthServiceGetCurrentUserProcedure:
			getCurrentUserHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AuthServiceClient is a client for AuthServiceName.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
}

// NewAuthServiceClient constructs a client for the service served at baseURL
// (for example, http://localhost:8080).
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register:       connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

type authServiceClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// EventServiceHandler serves events and their budgets.
type EventServiceHandler interface {
	CreateEvent(context.Context, *connect.Request[CreateEventRequest]) (*connect.Response[CreateEventResponse], error)
	GetEvent(context.Context, *connect.Request[GetEventRequest]) (*connect.Response[GetEventResponse], error)
	ListEvents(context.Context, *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error)
	UpdateEvent(context.Context, *connect.Request[UpdateEventRequest]) (*connect.Response[UpdateEventResponse], error)
	DeleteEvent(context.Context, *connect.Request[DeleteEventRequest]) (*connect.Response[DeleteEventResponse], error)
	GetEventBudget(context.Context, *connect.Request[GetEventBudgetRequest]) (*connect.Response[GetEventBudgetResponse], error)
	CalculateBudget(context.Context, *connect.Request[CalculateBudgetRequest]) (*connect.Response[CalculateBudgetResponse], error)
}

// NewEventServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewEventServiceHandler(svc EventServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createEventHandler := connect.NewUnaryHandler(EventServiceCreateEventProcedure, svc.CreateEvent, opts...)
	getEventHandler := connect.NewUnaryHandler(EventServiceGetEventProcedure, svc.GetEvent, opts...)
	listEventsHandler := connect.NewUnaryHandler(EventServiceListEventsProcedure, svc.ListEvents, opts...)
	updateEventHandler := connect.NewUnaryHandler(EventServiceUpdateEventProcedure, svc.UpdateEvent, opts...)
	deleteEventHandler := connect.NewUnaryHandler(EventServiceDeleteEventProcedure, svc.DeleteEvent, opts...)
	getEventBudgetHandler := connect.NewUnaryHandler(EventServiceGetEventBudgetProcedure, svc.GetEventBudget, opts...)
	calculateBudgetHandler := connect.NewUnaryHandler(EventServiceCalculateBudgetProcedure, svc.CalculateBudget, opts...)
	return "/" + EventServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EventServiceCreateEventProcedure:
			createEventHandler.ServeHTTP(w, r)
		case EventServiceGetEventProcedure:
			getEventHandler.ServeHTTP(w, r)
		case EventServiceListEventsProcedure:
			listEventsHandler.ServeHTTP(w, r)
		case EventServiceUpdateEventProcedure:
			updateEventHandler.ServeHTTP(w, r)
		case EventServiceDeleteEventProcedure:
			deleteEventHandler.ServeHTTP(w, r)
		case EventServiceGetEventBudgetProcedure:
			getEventBudgetHandler.ServeHTTP(w, r)
		case EventServiceCalculateBudgetProcedure:
			calculateBudgetHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// EventServiceClient is a client for EventServiceName.
type EventServiceClient interface {
	CreateEvent(context.Context, *connect.Request[CreateEventRequest]) (*connect.Response[CreateEventResponse], error)
	GetEvent(context.Context, *connect.Request[GetEventRequest]) (*connect.Response[GetEventResponse], error)
	ListEvents(context.Context, *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error)
	UpdateEvent(context.Context, *connect.Request[UpdateEventRequest]) (*connect.Response[UpdateEventResponse], error)
	DeleteEvent(context.Context, *connect.Request[DeleteEventRequest]) (*connect.Response[DeleteEventResponse], error)
	GetEventBudget(context.Context, *connect.Request[GetEventBudgetRequest]) (*connect.Response[GetEventBudgetResponse], error)
	CalculateBudget(context.Context, *connect.Request[CalculateBudgetRequest]) (*connect.Response[CalculateBudgetResponse], error)
}

// NewEventServiceClient constructs a client for the service served at baseURL
// (for example, http://localhost:8080).
func NewEventServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) EventServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &eventServiceClient{
		createEvent:     connect.NewClient[CreateEventRequest, CreateEventResponse](httpClient, baseURL+EventServiceCreateEventProcedure, opts...),
		getEvent:        connect.NewClient[GetEventRequest, GetEventResponse](httpClient, baseURL+EventServiceGetEventProcedure, opts...),
		listEvents:      connect.NewClient[ListEventsRequest, ListEventsResponse](httpClient, baseURL+EventServiceListEventsProcedure, opts...),
		updateEvent:     connect.NewClient[UpdateEventRequest, UpdateEventResponse](httpClient, baseURL+EventServiceUpdateEventProcedure, opts...),
		deleteEvent:     connect.NewClient[DeleteEventRequest, DeleteEventResponse](httpClient, baseURL+EventServiceDeleteEventProcedure, opts...),
		getEventBudget:  connect.NewClient[GetEventBudgetRequest, GetEventBudgetResponse](httpClient, baseURL+EventServiceGetEventBudgetProcedure, opts...),
		calculateBudget: connect.NewClient[CalculateBudgetRequest, CalculateBudgetResponse](httpClient, baseURL+EventServiceCalculateBudgetProcedure, opts...),
	}
}

type eventServiceClient struct {
	createEvent     *connect.Client[CreateEventRequest, CreateEventResponse]
	getEvent        *connect.Client[GetEventRequest, GetEventResponse]
	listEvents      *connect.Client[ListEventsRequest, ListEventsResponse]
	updateEvent     *connect.Client[UpdateEventRequest, UpdateEventResponse]
	deleteEvent     *connect.Client[DeleteEventRequest, DeleteEventResponse]
	getEventBudget  *connect.Client[GetEventBudgetRequest, GetEventBudgetResponse]
	calculateBudget *connect.Client[CalculateBudgetRequest, CalculateBudgetResponse]
}

func (c *eventServiceClient) CreateEvent(ctx context.Context, req *connect.Request[CreateEventRequest]) (*connect.Response[CreateEventResponse], error) {
	return c.createEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) GetEvent(ctx context.Context, req *connect.Request[GetEventRequest]) (*connect.Response[GetEventResponse], error) {
	return c.getEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) ListEvents(ctx context.Context, req *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error) {
	return c.listEvents.CallUnary(ctx, req)
}

func (c *eventServiceClient) UpdateEvent(ctx context.Context, req *connect.Request[UpdateEventRequest]) (*connect.Response[UpdateEventResponse], error) {
	return c.updateEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) DeleteEvent(ctx context.Context, req *connect.Request[DeleteEventRequest]) (*connect.Response[DeleteEventResponse], error) {
	return c.deleteEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) GetEventBudget(ctx context.Context, req *connect.Request[GetEventBudgetRequest]) (*connect.Response[GetEventBudgetResponse], error) {
	return c.getEventBudget.CallUnary(ctx, req)
}

func (c *eventServiceClient) CalculateBudget(ctx context.Context, req *connect.Request[CalculateBudgetRequest]) (*connect.Response[CalculateBudgetResponse], error) {
	return c.calculateBudget.CallUnary(ctx, req)
}

// ParticipantServiceHandler serves event participants and pairings.
type ParticipantServiceHandler interface {
	CreateParticipant(context.Context, *connect.Request[CreateParticipantRequest]) (*connect.Response[CreateParticipantResponse], error)
	UpdateParticipant(context.Context, *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error)
	DeleteParticipant(context.Context, *connect.Request[DeleteParticipantRequest]) (*connect.Response[DeleteParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error)
}

// NewParticipantServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewParticipantServiceHandler(svc ParticipantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createParticipantHandler := connect.NewUnaryHandler(ParticipantServiceCreateParticipantProcedure, svc.CreateParticipant, opts...)
	updateParticipantHandler := connect.NewUnaryHandler(ParticipantServiceUpdateParticipantProcedure, svc.UpdateParticipant, opts...)
	deleteParticipantHandler := connect.NewUnaryHandler(ParticipantServiceDeleteParticipantProcedure, svc.DeleteParticipant, opts...)
	listParticipantsHandler := connect.NewUnaryHandler(ParticipantServiceListParticipantsProcedure, svc.ListParticipants, opts...)
	return "/" + ParticipantServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ParticipantServiceCreateParticipantProcedure:
			createParticipantHandler.ServeHTTP(w, r)
		case ParticipantServiceUpdateParticipantProcedure:
			updateParticipantHandler.ServeHTTP(w, r)
		case ParticipantServiceDeleteParticipantProcedure:
			deleteParticipantHandler.ServeHTTP(w, r)
		case ParticipantServiceListParticipantsProcedure:
			listParticipantsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ParticipantServiceClient is a client for ParticipantServiceName.
type ParticipantServiceClient interface {
	CreateParticipant(context.Context, *connect.Request[CreateParticipantRequest]) (*connect.Response[CreateParticipantResponse], error)
	UpdateParticipant(context.Context, *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error)
	DeleteParticipant(context.Context, *connect.Request[DeleteParticipantRequest]) (*connect.Response[DeleteParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error)
}

// NewParticipantServiceClient constructs a client for the service served at baseURL
// (for example, http://localhost:8080).
func NewParticipantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ParticipantServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &participantServiceClient{
		createParticipant: connect.NewClient[CreateParticipantRequest, CreateParticipantResponse](httpClient, baseURL+ParticipantServiceCreateParticipantProcedure, opts...),
		updateParticipant: connect.NewClient[UpdateParticipantRequest, UpdateParticipantResponse](httpClient, baseURL+ParticipantServiceUpdateParticipantProcedure, opts...),
		deleteParticipant: connect.NewClient[DeleteParticipantRequest, DeleteParticipantResponse](httpClient, baseURL+ParticipantServiceDeleteParticipantProcedure, opts...),
		listParticipants:  connect.NewClient[ListParticipantsRequest, ListParticipantsResponse](httpClient, baseURL+ParticipantServiceListParticipantsProcedure, opts...),
	}
}

type participantServiceClient struct {
	createParticipant *connect.Client[CreateParticipantRequest, CreateParticipantResponse]
	updateParticipant *connect.Client[UpdateParticipantRequest, UpdateParticipantResponse]
	deleteParticipant *connect.Client[DeleteParticipantRequest, DeleteParticipantResponse]
	listParticipants  *connect.Client[ListParticipantsRequest, ListParticipantsResponse]
}

func (c *participantServiceClient) CreateParticipant(ctx context.Context, req *connect.Request[CreateParticipantRequest]) (*connect.Response[CreateParticipantResponse], error) {
	return c.createParticipant.CallUnary(ctx, req)
}

func (c *participantServiceClient) UpdateParticipant(ctx context.Context, req *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error) {
	return c.updateParticipant.CallUnary(ctx, req)
}

func (c *participantServiceClient) DeleteParticipant(ctx context.Context, req *connect.Request[DeleteParticipantRequest]) (*connect.Response[DeleteParticipantResponse], error) {
	return c.deleteParticipant.CallUnary(ctx, req)
}

func (c *participantServiceClient) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

// PaymentServiceHandler serves payments recorded against an event.
type PaymentServiceHandler interface {
	CreatePayment(context.Context, *connect.Request[CreatePaymentRequest]) (*connect.Response[CreatePaymentResponse], error)
	UpdatePayment(context.Context, *connect.Request[UpdatePaymentRequest]) (*connect.Response[UpdatePaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[DeletePaymentRequest]) (*connect.Response[DeletePaymentResponse], error)
	ListPayments(context.Context, *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error)
}

// NewPaymentServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewPaymentServiceHandler(svc PaymentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createPaymentHandler := connect.NewUnaryHandler(PaymentServiceCreatePaymentProcedure, svc.CreatePayment, opts...)
	updatePaymentHandler := connect.NewUnaryHandler(PaymentServiceUpdatePaymentProcedure, svc.UpdatePayment, opts...)
	deletePaymentHandler := connect.NewUnaryHandler(PaymentServiceDeletePaymentProcedure, svc.DeletePayment, opts...)
	listPaymentsHandler := connect.NewUnaryHandler(PaymentServiceListPaymentsProcedure, svc.ListPayments, opts...)
	return "/" + PaymentServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PaymentServiceCreatePaymentProcedure:
			createPaymentHandler.ServeHTTP(w, r)
		case PaymentServiceUpdatePaymentProcedure:
			updatePaymentHandler.ServeHTTP(w, r)
		case PaymentServiceDeletePaymentProcedure:
			deletePaymentHandler.ServeHTTP(w, r)
		case PaymentServiceListPaymentsProcedure:
			listPaymentsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PaymentServiceClient is a client for PaymentServiceName.
type PaymentServiceClient interface {
	CreatePayment(context.Context, *connect.Request[CreatePaymentRequest]) (*connect.Response[CreatePaymentResponse], error)
	UpdatePayment(context.Context, *connect.Request[UpdatePaymentRequest]) (*connect.Response[UpdatePaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[DeletePaymentRequest]) (*connect.Response[DeletePaymentResponse], error)
	ListPayments(context.Context, *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error)
}

// NewPaymentServiceClient constructs a client for the service served at baseURL
// (for example, http://localhost:8080).
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PaymentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &paymentServiceClient{
		createPayment: connect.NewClient[CreatePaymentRequest, CreatePaymentResponse](httpClient, baseURL+PaymentServiceCreatePaymentProcedure, opts...),
		updatePayment: connect.NewClient[UpdatePaymentRequest, UpdatePaymentResponse](httpClient, baseURL+PaymentServiceUpdatePaymentProcedure, opts...),
		deletePayment: connect.NewClient[DeletePaymentRequest, DeletePaymentResponse](httpClient, baseURL+PaymentServiceDeletePaymentProcedure, opts...),
		listPayments:  connect.NewClient[ListPaymentsRequest, ListPaymentsResponse](httpClient, baseURL+PaymentServiceListPaymentsProcedure, opts...),
	}
}

type paymentServiceClient struct {
	createPayment *connect.Client[CreatePaymentRequest, CreatePaymentResponse]
	updatePayment *connect.Client[UpdatePaymentRequest, UpdatePaymentResponse]
	deletePayment *connect.Client[DeletePaymentRequest, DeletePaymentResponse]
	listPayments  *connect.Client[ListPaymentsRequest, ListPaymentsResponse]
}

func (c *paymentServiceClient) CreatePayment(ctx context.Context, req *connect.Request[CreatePaymentRequest]) (*connect.Response[CreatePaymentResponse], error) {
	return c.createPayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) UpdatePayment(ctx context.Context, req *connect.Request[UpdatePaymentRequest]) (*connect.Response[UpdatePaymentResponse], error) {
	return c.updatePayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) DeletePayment(ctx context.Context, req *connect.Request[DeletePaymentRequest]) (*connect.Response[DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}
