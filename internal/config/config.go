package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tdex-network/keygen/internal/core/application"
	"github.com/tdex-network/keygen/pkg/addrgen"
	"github.com/tdex-network/keygen/pkg/mnemonic"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory where address lists and stats
	// are stored
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is one of mainnet, testnet, regtest or simnet
	NetworkKey = "NETWORK"
	// CompressedKey makes keys and addresses use compressed public keys
	CompressedKey = "COMPRESSED"
	// WordlistKey is the name of the default mnemonic wordlist
	WordlistKey = "WORDLIST"
	// AcceleratorPathKey is the path or name of the external address
	// accelerator (vanitygen's keyconv)
	AcceleratorPathKey = "ACCELERATOR_PATH"
	// AcceleratorTimeoutKey is the max time to wait for a single accelerator
	// invocation
	AcceleratorTimeoutKey = "ACCELERATOR_TIMEOUT"
	// NoAcceleratorKey forces in-process address conversion
	NoAcceleratorKey = "NO_ACCELERATOR"
	// CheckpointIntervalKey is the distance in rounds between two cached
	// hash chain checkpoints, 0 disables the cache
	CheckpointIntervalKey = "CHECKPOINT_INTERVAL"
	// CheckpointCacheSizeKey is the max number of cached checkpoints
	CheckpointCacheSizeKey = "CHECKPOINT_CACHE_SIZE"
	// ConcurrencyKey is the max number of index ranges generated in parallel
	ConcurrencyKey = "CONCURRENCY"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// EnableProfilerKey enables memory statistics and the dump of prometheus
	// metrics to the stats folder of the datadir
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing memory statistics
	StatsIntervalKey = "STATS_INTERVAL"
	// StatsFileKey is the file where generation counters are appended on
	// exit. Defaults to metrics.txt in the stats folder when the profiler is
	// enabled
	StatsFileKey = "STATS_FILE"

	DbLocation       = "db"
	ProfilerLocation = "stats"
	StatsFilename    = "metrics.txt"
)

var (
	vip            *viper.Viper
	defaultDatadir = btcutil.AppDataDir("keygen", false)

	networks = map[string]*chaincfg.Params{
		"mainnet": &chaincfg.MainNetParams,
		"testnet": &chaincfg.TestNet3Params,
		"regtest": &chaincfg.RegressionNetParams,
		"simnet":  &chaincfg.SimNetParams,
	}
)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("KEYGEN")
	vip.AutomaticEnv()

	vip.SetDefault(LogLevelKey, int(log.InfoLevel))
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(NetworkKey, "mainnet")
	vip.SetDefault(CompressedKey, false)
	vip.SetDefault(WordlistKey, mnemonic.DefaultWordlist)
	vip.SetDefault(AcceleratorPathKey, addrgen.DefaultAcceleratorPath)
	vip.SetDefault(AcceleratorTimeoutKey, addrgen.DefaultAcceleratorTimeout)
	vip.SetDefault(NoAcceleratorKey, false)
	vip.SetDefault(CheckpointIntervalKey, addrgen.DefaultCheckpointInterval)
	vip.SetDefault(CheckpointCacheSizeKey, addrgen.DefaultMaxCheckpoints)
	vip.SetDefault(ConcurrencyKey, 0)
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetStatsFile returns the path of the file where counters are dumped, if
// any.
func GetStatsFile() string {
	if statsFile := GetString(StatsFileKey); statsFile != "" {
		return statsFile
	}
	if GetBool(EnableProfilerKey) {
		return filepath.Join(GetDatadir(), ProfilerLocation, StatsFilename)
	}
	return ""
}

func GetNetwork() *chaincfg.Params {
	return networks[strings.ToLower(GetString(NetworkKey))]
}

// GetApplicationConfig returns the config for the application services,
// storing address lists in the db folder of the datadir.
func GetApplicationConfig() *application.Config {
	return &application.Config{
		DBType:             GetString(DBTypeKey),
		DBConfig:           filepath.Join(GetDatadir(), DbLocation),
		Network:            GetNetwork(),
		NoAccelerator:      GetBool(NoAcceleratorKey),
		AcceleratorPath:    GetString(AcceleratorPathKey),
		AcceleratorTimeout: GetDuration(AcceleratorTimeoutKey),
		CheckpointInterval: uint32(GetInt(CheckpointIntervalKey)),
		MaxCheckpoints:     int64(GetInt(CheckpointCacheSizeKey)),
		Concurrency:        GetInt(ConcurrencyKey),
	}
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if GetNetwork() == nil {
		return fmt.Errorf(
			"unknown network %s, must be one of mainnet, testnet, regtest, simnet",
			GetString(NetworkKey),
		)
	}

	if _, err := mnemonic.LoadWordlist(GetString(WordlistKey)); err != nil {
		return err
	}

	if GetDuration(AcceleratorTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive duration", AcceleratorTimeoutKey)
	}
	if GetInt(CheckpointIntervalKey) < 0 {
		return fmt.Errorf("%s must not be negative", CheckpointIntervalKey)
	}
	if GetInt(CheckpointCacheSizeKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", CheckpointCacheSizeKey)
	}
	if GetInt(ConcurrencyKey) < 0 {
		return fmt.Errorf("%s must not be negative", ConcurrencyKey)
	}

	dbType := GetString(DBTypeKey)
	if _, ok := application.SupportedDBType[dbType]; !ok {
		return fmt.Errorf("%s: %s", application.ErrUnsupportedDBType, dbType)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if GetString(DBTypeKey) == application.DBBadger {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
			return err
		}
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
