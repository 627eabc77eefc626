package log

// Common field names for structured logging.
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldRequestID     = "request_id"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldTransactionID = "transaction_id"
	FieldGoalID        = "goal_id"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldStreak        = "streak"
	FieldKey           = "key"
	FieldBackend       = "backend"
	FieldLedgerRef     = "ledger_ref"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentKV      = "kv"
	ComponentBackend = "backend"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentLedger  = "ledger"
	ComponentReport  = "report"
)

// Operations defines standard operation names.
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpLoad    = "load"
	OpPersist = "persist"
	OpPublish = "publish"
	OpConsume = "consume"
	OpAppend  = "append"
	OpExport  = "export"
	OpStartup = "startup"
	OpShutdown = "shutdown"
)
