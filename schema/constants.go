package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend behind DATABASE_URL.
	DatabaseBackend string

	// InsightTier records which path of the synthesizer produced an insight.
	InsightTier string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Insight tiers.
const (
	GeneratedTier InsightTier = "ai"
	TemplateTier  InsightTier = "template"
)

// Tier markers prefixed to every synthesized insight.
const (
	GeneratedMarker = "🤖 AI ANALYSIS: "
	TemplateMarker  = "📊 RELIABLE ANALYSIS: "
)

// Churn label values as stored in telco_churn.
const (
	ChurnYes = "Yes"
	ChurnNo  = "No"
)

// Categorical feature columns of the churn dataset, in feature order.
const (
	ContractColumn        = "contract"
	InternetServiceColumn = "internet_service"
	OnlineSecurityColumn  = "online_security"
	TechSupportColumn     = "tech_support"
	PaymentMethodColumn   = "payment_method"
)

// Numeric feature columns of the churn dataset, in feature order.
const (
	TenureColumn         = "tenure"
	MonthlyChargesColumn = "monthly_charges"
	TotalChargesColumn   = "total_charges"
)

// CategoricalColumns lists the label-encoded churn columns.
var CategoricalColumns = []string{
	ContractColumn,
	InternetServiceColumn,
	OnlineSecurityColumn,
	TechSupportColumn,
	PaymentMethodColumn,
}

// ChurnFeatureNames is the column order of the classifier's feature matrix.
var ChurnFeatureNames = []string{
	TenureColumn,
	MonthlyChargesColumn,
	TotalChargesColumn,
	ContractColumn,
	InternetServiceColumn,
	OnlineSecurityColumn,
	TechSupportColumn,
	PaymentMethodColumn,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
