package types

// Category identifies one independent log-source-to-result pipeline
type Category string

const (
	CategoryAuth     Category = "auth"
	CategoryFirewall Category = "firewall"
	CategoryIDS      Category = "ids"
)

// Label is the human-readable name used in messages
func (c Category) Label() string {
	switch c {
	case CategoryAuth:
		return "Authentication"
	case CategoryFirewall:
		return "Firewall"
	case CategoryIDS:
		return "IDS"
	default:
		return string(c)
	}
}

// Categories lists every category in report order
var Categories = []Category{CategoryAuth, CategoryFirewall, CategoryIDS}

// DefaultBruteForceThreshold is the failure count an IP must exceed to be flagged
const DefaultBruteForceThreshold = 5

// Config represents the application configuration
type Config struct {
	Input struct {
		AuthLogPath     string `yaml:"auth_log_path" env:"SECREPORT_AUTH_LOG"`
		FirewallLogPath string `yaml:"firewall_log_path" env:"SECREPORT_FIREWALL_LOG"`
		IDSLogPath      string `yaml:"ids_log_path" env:"SECREPORT_IDS_LOG"`
	} `yaml:"input"`

	Detection struct {
		BruteForceThreshold int `yaml:"brute_force_threshold" env:"SECREPORT_BRUTE_FORCE_THRESHOLD"` // strict ">" comparison
	} `yaml:"detection"`

	Output struct {
		ReportPath      string `yaml:"report_path" env:"SECREPORT_REPORT_PATH"`
		StateDBPath     string `yaml:"state_db_path" env:"SECREPORT_STATE_DB"` // empty disables the snapshot store
		MetricsTextfile string `yaml:"metrics_textfile" env:"SECREPORT_METRICS_TEXTFILE"`
		Quiet           bool   `yaml:"quiet" env:"SECREPORT_QUIET"` // suppress console rendering
	} `yaml:"output"`

	Logging struct {
		Path       string `yaml:"path" env:"SECREPORT_LOG_PATH"`
		MaxSizeMB  int    `yaml:"max_size_mb" env:"SECREPORT_LOG_MAX_SIZE_MB"`
		MaxBackups int    `yaml:"max_backups" env:"SECREPORT_LOG_MAX_BACKUPS"`
		Stderr     bool   `yaml:"stderr" env:"SECREPORT_LOG_STDERR"` // tee diagnostics to stderr
	} `yaml:"logging"`
}
