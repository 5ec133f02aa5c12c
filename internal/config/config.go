// Package config provides functionality for managing configuration options
// for the server and the client using command-line flags and environment
// variables, with an optional JSON config file and .env file underneath.
//
// Precedence, lowest first: defaults, config file, flags, environment.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/shorturlproject/shorturl/internal/geo"
	"github.com/shorturlproject/shorturl/internal/worker"
)

// Duration is a time.Duration that reads "1.5s" style strings from JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"1.5s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Options holds the configuration values of the server.
type Options struct {
	// Address is the HTTP listen address (ip:port).
	Address string `json:"server_address"`

	// RedisURL selects the Redis store when set.
	RedisURL string `json:"redis_url"`

	// DatabaseDSN selects the PostgreSQL store when set and RedisURL is not.
	DatabaseDSN string `json:"database_dsn"`

	JWTSecret  string   `json:"jwt_secret"`
	AdminUsers []string `json:"admin_users"`

	// GeoEndpoint is an ip-api style URL with one %s for the IP. Empty
	// disables geolocation.
	GeoEndpoint string   `json:"geo_endpoint"`
	GeoTimeout  Duration `json:"geo_timeout"`

	// GRPCPort is the gRPC listen port; 0 disables the gRPC server.
	GRPCPort int `json:"grpc_port"`

	// TrustedSubnet restricts the admin dashboard to a CIDR when set.
	TrustedSubnet string   `json:"trusted_subnet"`
	CORSOrigins   []string `json:"cors_origins"`

	EnablePprof bool     `json:"enable_pprof"`
	EnableHTTPS bool     `json:"enable_https"`
	TLSHosts    []string `json:"tls_hosts"`
	CertCache   string   `json:"cert_cache"`

	LogLevel string `json:"log_level"`

	// Config is the path of the JSON config file that was loaded, if any.
	Config string `json:"-"`
}

// Subnet parses TrustedSubnet. An empty value yields nil.
func (o *Options) Subnet() (*net.IPNet, error) {
	return parseSubnet(o.TrustedSubnet)
}

func defaultOptions() Options {
	return Options{
		Address:     "localhost:8080",
		JWTSecret:   "dev_secret",
		GeoEndpoint: geo.DefaultEndpoint,
		GeoTimeout:  Duration(geo.DefaultTimeout),
		GRPCPort:    3200,
		CertCache:   "cache-dir",
		LogLevel:    "info",
	}
}

// Parse reads server options from args (without the program name) and the
// environment.
func Parse(args []string) (*Options, error) {
	loadDotEnv()

	opts := defaultOptions()

	if path := configPath(args); path != "" {
		if err := loadFile(path, &opts); err != nil {
			return nil, err
		}
		opts.Config = path
	}

	var admins, cors, hosts string
	var geoTimeout time.Duration

	flags := flag.NewFlagSet("shortener", flag.ContinueOnError)
	flags.String("c", opts.Config, "path to JSON config file")
	flags.String("config", opts.Config, "path to JSON config file")
	flags.StringVar(&opts.Address, "a", opts.Address, "run on ip:port server")
	flags.StringVar(&opts.RedisURL, "r", opts.RedisURL, "redis url")
	flags.StringVar(&opts.DatabaseDSN, "d", opts.DatabaseDSN, "db address")
	flags.StringVar(&opts.JWTSecret, "k", opts.JWTSecret, "jwt signing secret")
	flags.StringVar(&admins, "admins", strings.Join(opts.AdminUsers, ","), "comma separated admin usernames")
	flags.StringVar(&opts.GeoEndpoint, "geo", opts.GeoEndpoint, "geolocation endpoint, %s is replaced by the ip")
	flags.DurationVar(&geoTimeout, "geo-timeout", time.Duration(opts.GeoTimeout), "geolocation timeout")
	flags.IntVar(&opts.GRPCPort, "g", opts.GRPCPort, "grpc port, 0 disables")
	flags.StringVar(&opts.TrustedSubnet, "t", opts.TrustedSubnet, "trusted subnet (CIDR) for the admin dashboard")
	flags.StringVar(&cors, "cors", strings.Join(opts.CORSOrigins, ","), "comma separated allowed origins")
	flags.BoolVar(&opts.EnablePprof, "p", opts.EnablePprof, "enable pprof")
	flags.BoolVar(&opts.EnableHTTPS, "s", opts.EnableHTTPS, "enable https")
	flags.StringVar(&hosts, "tls-hosts", strings.Join(opts.TLSHosts, ","), "comma separated hostnames for autocert")
	flags.StringVar(&opts.CertCache, "cert-cache", opts.CertCache, "autocert cache directory")
	flags.StringVar(&opts.LogLevel, "l", opts.LogLevel, "log level")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	opts.AdminUsers = splitList(admins)
	opts.CORSOrigins = splitList(cors)
	opts.TLSHosts = splitList(hosts)
	opts.GeoTimeout = Duration(geoTimeout)

	// Override flags with environment variables if set
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		opts.Address = v
	} else if v := os.Getenv("PORT"); v != "" {
		opts.Address = ":" + v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		opts.RedisURL = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		opts.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		opts.JWTSecret = v
	}
	if v := os.Getenv("ADMIN_USERS"); v != "" {
		opts.AdminUsers = splitList(v)
	}
	if v, ok := os.LookupEnv("GEO_ENDPOINT"); ok {
		opts.GeoEndpoint = v
	}
	if v := os.Getenv("GEO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("GEO_TIMEOUT: %w", err)
		}
		opts.GeoTimeout = Duration(d)
	}
	if v := os.Getenv("GRPC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("GRPC_PORT: %w", err)
		}
		opts.GRPCPort = port
	}
	if v := os.Getenv("TRUSTED_SUBNET"); v != "" {
		opts.TrustedSubnet = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		opts.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("ENABLE_HTTPS"); v != "" {
		httpMode, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("ENABLE_HTTPS: %w", err)
		}
		opts.EnableHTTPS = httpMode
	}
	if v := os.Getenv("TLS_HOSTS"); v != "" {
		opts.TLSHosts = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		opts.LogLevel = v
	}

	if _, err := opts.Subnet(); err != nil {
		return nil, err
	}
	if opts.EnableHTTPS && len(opts.TLSHosts) == 0 {
		return nil, errors.New("enable_https requires at least one tls host")
	}

	return &opts, nil
}

// ClientOptions configure the shortenctl client.
type ClientOptions struct {
	Server    string   `json:"server"`
	Token     string   `json:"token"`
	QueueFile string   `json:"queue_file"`
	Interval  Duration `json:"probe_interval"`
	LogLevel  string   `json:"log_level"`
	Config    string   `json:"-"`
}

func defaultClientOptions() ClientOptions {
	queue := filepath.Join(".shorturl", "pending.json")
	if dir, err := os.UserConfigDir(); err == nil {
		queue = filepath.Join(dir, "shorturl", "pending.json")
	}
	return ClientOptions{
		Server:    "http://localhost:8080",
		QueueFile: queue,
		Interval:  Duration(worker.DefaultInterval),
		LogLevel:  "warn",
	}
}

// ParseClient reads client options and returns the remaining positional
// arguments (the subcommand and its operands).
func ParseClient(args []string) (*ClientOptions, []string, error) {
	loadDotEnv()

	opts := defaultClientOptions()

	if path := configPath(args); path != "" {
		if err := loadFile(path, &opts); err != nil {
			return nil, nil, err
		}
		opts.Config = path
	}

	var interval time.Duration

	flags := flag.NewFlagSet("shortenctl", flag.ContinueOnError)
	flags.String("c", opts.Config, "path to JSON config file")
	flags.String("config", opts.Config, "path to JSON config file")
	flags.StringVar(&opts.Server, "server", opts.Server, "server base url")
	flags.StringVar(&opts.Token, "token", opts.Token, "bearer token")
	flags.StringVar(&opts.QueueFile, "queue", opts.QueueFile, "pending queue file")
	flags.DurationVar(&interval, "interval", time.Duration(opts.Interval), "connectivity probe interval")
	flags.StringVar(&opts.LogLevel, "l", opts.LogLevel, "log level")

	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}
	opts.Interval = Duration(interval)

	if v := os.Getenv("SHORTURL_SERVER"); v != "" {
		opts.Server = v
	}
	if v := os.Getenv("SHORTURL_TOKEN"); v != "" {
		opts.Token = v
	}
	if v := os.Getenv("SHORTURL_QUEUE"); v != "" {
		opts.QueueFile = v
	}
	if v := os.Getenv("SHORTURL_PROBE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, nil, fmt.Errorf("SHORTURL_PROBE_INTERVAL: %w", err)
		}
		opts.Interval = Duration(d)
	}

	return &opts, flags.Args(), nil
}

// loadDotEnv loads ./.env without overriding variables already set.
func loadDotEnv() {
	_ = godotenv.Load()
}

// configPath finds -c/-config in args before the flag set is built, so
// that the file can supply flag defaults. CONFIG wins over the flag.
func configPath(args []string) string {
	if v := os.Getenv("CONFIG"); v != "" {
		return v
	}

	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			break
		}
		a := strings.TrimLeft(args[i], "-")
		if a == args[i] {
			continue
		}
		name, value, hasValue := strings.Cut(a, "=")
		if name != "c" && name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func loadFile(path string, dst any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file %s not found", path)
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func parseSubnet(cidr string) (*net.IPNet, error) {
	if strings.TrimSpace(cidr) == "" {
		return nil, nil
	}
	_, n, err := net.ParseCIDR(strings.TrimSpace(cidr))
	if err != nil {
		return nil, fmt.Errorf("trusted subnet: %w", err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
