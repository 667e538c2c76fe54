package cfg

import (
	"errors"
	"io/fs"
	"time"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Http   *HTTPConfig
	Grpc   *GRPCConfig
	Db     *PGDBCfg
	Redis  *RedisCfg
	Kafka  *KafkaCfg
	Outbox *OutboxCfg
	Log    *LogCfg
}

type KafkaCfg struct {
	Topic             string   `envconfig:"KAFKA_TOPIC" default:"catalog.categories"`
	Brokers           []string `envconfig:"KAFKA_BROKERS" required:"true"`
	NetworkMode       string   `envconfig:"KAFKA_NETWORK_MODE" default:"tcp"`
	Partitions        int      `envconfig:"KAFKA_PARTITIONS" default:"3"`
	ReplicationFactor int      `envconfig:"REPLICATION_FACTOR" default:"1"`
}

type HTTPConfig struct {
	Port         string        `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `envconfig:"KEEP_ALIVE" default:"60s"`
}

type GRPCConfig struct {
	Port        string `envconfig:"GRPC_PORT" default:"8091"`
	NetworkMode string `envconfig:"GRPC_NETWORK_MODE" default:"tcp"`
}

type PGDBCfg struct {
	Host           string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port           string `envconfig:"POSTGRES_PORT" default:"5432"`
	User           string `envconfig:"POSTGRES_USER" required:"true"`
	Password       string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName         string `envconfig:"POSTGRES_DB" required:"true"`
	SSLMode        string `envconfig:"SSL_MODE" default:"disable"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"file://db/migrations"`
}

type RedisCfg struct {
	Addr         string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	User         string        `envconfig:"REDIS_USER"`
	DB           int           `envconfig:"REDIS_DB_ID" default:"0"`
	MaxRetries   int           `envconfig:"MAX_RETRIES" default:"3"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
	CategoryTTL  time.Duration `envconfig:"CATEGORY_TTL" default:"3m"`
}

// Timeout возвращает наибольший из таймаутов чтения и записи.
func (r *RedisCfg) Timeout() time.Duration {
	return max(r.ReadTimeout, r.WriteTimeout)
}

type OutboxCfg struct {
	BatchSize     int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PollInterval  time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	RetryDelay    time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"1s"`
	MaxRetryDelay time.Duration `envconfig:"OUTBOX_MAX_RETRY_DELAY" default:"30s"`
}

type LogCfg struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Если рядом лежит .env, переменные из него подхватываются, не перекрывая уже заданные.
func Load(log logger.Logger) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		log.Warnf("failed to read .env: %v", err)
	}

	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	grpc, err := loadGRPCConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	outbox, err := loadOutboxCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	logCfg, err := LoadLogCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:   http,
		Grpc:   grpc,
		Db:     db,
		Redis:  redis,
		Kafka:  kafka,
		Outbox: outbox,
		Log:    logCfg,
	}, nil
}

// LoadLogCfg читается отдельно: уровень логирования нужен до создания логгера.
func LoadLogCfg() (*LogCfg, error) {
	_ = loadDotEnv()

	var c LogCfg
	if err := envconfig.Process("", &c); err != nil {
		return nil, e.Wrap(e.ErrIncorrectEnvVariable.Error(), err)
	}

	return &c, nil
}

func loadKafkaCfg(log logger.Logger) (*KafkaCfg, error) {
	var c KafkaCfg
	if err := process(log, "kafka", &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	var c HTTPConfig
	if err := process(log, "http", &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func loadGRPCConfig(log logger.Logger) (*GRPCConfig, error) {
	var c GRPCConfig
	if err := process(log, "grpc", &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	var c PGDBCfg
	if err := process(log, "postgres", &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	var c RedisCfg
	if err := process(log, "redis", &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func loadOutboxCfg(log logger.Logger) (*OutboxCfg, error) {
	var c OutboxCfg
	if err := process(log, "outbox", &c); err != nil {
		return nil, err
	}

	if c.BatchSize <= 0 {
		err := e.ErrIncorrectEnvVariable
		log.Errorf(err, "invalid OUTBOX_BATCH_SIZE: %d", c.BatchSize)
		return nil, e.Wrap("OUTBOX_BATCH_SIZE", err)
	}

	return &c, nil
}

// loadDotEnv подхватывает .env из рабочей директории. Отсутствие файла ошибкой не считается.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// process заполняет секцию конфигурации из окружения и логирует ошибку.
func process(log logger.Logger, section string, spec any) error {
	if err := envconfig.Process("", spec); err != nil {
		log.Errorf(err, "invalid %s configuration", section)
		return e.Wrap(section, errors.Join(e.ErrIncorrectEnvVariable, err))
	}

	return nil
}
