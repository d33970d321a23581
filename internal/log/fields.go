package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldTransactionID = "transaction_id"
	FieldDate          = "date"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldType          = "type"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldLimit         = "limit"
	FieldCount         = "count"
	FieldBatchID       = "batch_id"
	FieldLine          = "line"
	FieldImported      = "imported"
	FieldFailed        = "failed"
	FieldSheetsRef     = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentStorage = "storage"
	ComponentService = "service"
	ComponentImport  = "import"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpRecord   = "record"
	OpList     = "list"
	OpSummary  = "summary"
	OpTotals   = "category_totals"
	OpImport   = "import"
	OpExport   = "export"
	OpSync     = "sync"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
