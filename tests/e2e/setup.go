//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wallet-screening/cmd/bootstrap"
	"wallet-screening/cmd/bootstrap/components"
	"wallet-screening/internal/pkg/config"
	"wallet-screening/internal/pkg/secret"
	usecase "wallet-screening/internal/usecase"
	"wallet-screening/tests/common/builder"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const AdminToken = "e2e-admin-token"

var (
	redisContainerOnce    sync.Once
	redisTestContainer    testcontainers.Container
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	// Redis DB 0 is left alone; each suite takes the next logical database.
	nextRedisDB atomic.Int32

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// E2EEnv is everything a suite needs to drive the application and inspect its stores.
type E2EEnv struct {
	Router      *gin.Engine
	Config      config.Config
	Redis       *redis.Client
	Audit       *pgxpool.Pool
	Screening   usecase.ScreeningUseCase
	Facilitator *FakeFacilitator
}

// ------------------------------------------------------------
// 各テストスイート用にセットアップ
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) *E2EEnv {
	gin.SetMode(gin.TestMode)
	startRedisContainerOnce(t)
	startPostgreSQLContainerOnce(t)

	redisInfo, err := getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "Redisコンテナ情報の取得に失敗")
	postgresInfo, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "PostgreSQLコンテナ情報の取得に失敗")

	auditDSN := prepareAuditDatabase(t, postgresInfo)
	facilitator := NewFakeFacilitator(t)

	cfg := createTestConfig(t, redisInfo, auditDSN, facilitator.URL())
	env, app := buildE2EApp(t, cfg)
	env.Facilitator = facilitator

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	auditPool, err := pgxpool.New(context.Background(), auditDSN)
	require.NoError(t, err, "監査DBへの接続に失敗")
	t.Cleanup(auditPool.Close)
	env.Audit = auditPool

	return env
}

// ------------------------------------------------------------
// コンテナ起動関数
// ------------------------------------------------------------
func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Ready to accept connections"),
				wait.ForListeningPort("6379/tcp"),
			).WithStartupTimeoutDefault(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		redisTestContainer, err = startGenericContainer(req, 120)
		require.NoError(t, err, "Redisコンテナの起動に失敗")
	})
}

func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off", // テスト用に永続化を無効
				"-c", "synchronous_commit=off",
				"-c", "full_page_writes=off",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		postgresTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "PostgreSQLコンテナの起動に失敗")
	})
}

func startGenericContainer(req testcontainers.ContainerRequest, timeoutSeconds int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()
	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// 監査DBの準備（スイート毎に別データベース、マイグレーションはアプリ起動時に実行）
// ------------------------------------------------------------
func prepareAuditDatabase(t *testing.T, info ContainerInfo) string {
	dbName := "audit_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, info.Host, info.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "管理者接続に失敗")
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "監査用データベースの作成に失敗")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("クリーンアップ用のデータベース接続に失敗しました", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()
		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", dbName, "error", err.Error())
		}
	})

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		testUser, testPassword, info.Host, info.Port.Port(), dbName)
}

func createTestConfig(t *testing.T, redisInfo ContainerInfo, auditDSN, facilitatorURL string) config.Config {
	db := int(nextRedisDB.Add(1))
	require.Less(t, db, 16, "Redisの論理DBが不足しています")

	hash, err := secret.HashToken(AdminToken)
	require.NoError(t, err)

	cfg := config.NewTestConfig()
	cfg.Redis.Addr = redisInfo.Host + ":" + redisInfo.Port.Port()
	cfg.Redis.DB = db
	cfg.Audit.DatabaseURL = auditDSN
	cfg.Admin.TokenHash = hash
	cfg.Quota.AdminLimit = 1000
	cfg.Quota.FreeTierLimit = 3
	cfg.Payment.Recipient = builder.PaymentRecipient
	cfg.Payment.Network = builder.PaymentNetwork
	cfg.Payment.Mode = config.PaymentModeFacilitator
	cfg.Payment.FacilitatorURL = facilitatorURL
	cfg.Payment.FacilitatorSecret = "e2e-facilitator-secret"
	cfg.Screening.BatchMaxSize = 5
	return cfg
}

// ------------------------------------------------------------
// E2Eテスト用アプリケーション構築関数
// ------------------------------------------------------------
func buildE2EApp(t *testing.T, cfg config.Config) (*E2EEnv, *fx.App) {
	env := &E2EEnv{}

	app := fx.New(
		fx.Module("testconfig", fx.Supply(cfg)),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		bootstrap.JWTModule,
		components.StoreModule,
		bootstrap.PaymentModule,
		components.UseCaseModule,
		components.HandlerModule,
		bootstrap.SchedulerModule,

		fx.Populate(&env.Router, &env.Config, &env.Redis, &env.Screening),

		// ログを無効にして起動
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	return env, app
}

// ------------------------------------------------------------
// x402ファシリテーターの代役
// ------------------------------------------------------------

// FakeFacilitator accepts every proof unless its payer was marked as rejected.
type FakeFacilitator struct {
	server   *httptest.Server
	mu       sync.Mutex
	rejected map[string]bool
	calls    int
}

func NewFakeFacilitator(t *testing.T) *FakeFacilitator {
	f := &FakeFacilitator{rejected: map[string]bool{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *FakeFacilitator) URL() string {
	return f.server.URL + "/verify"
}

func (f *FakeFacilitator) Reject(payer string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected[strings.ToLower(payer)] = true
}

func (f *FakeFacilitator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeFacilitator) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected = map[string]bool{}
	f.calls = 0
}

func (f *FakeFacilitator) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentPayload struct {
			Payload struct {
				From string `json:"from"`
			} `json:"payload"`
		} `json:"paymentPayload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	f.mu.Lock()
	f.calls++
	payer := strings.ToLower(req.PaymentPayload.Payload.From)
	rejected := f.rejected[payer]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if rejected {
		_ = json.NewEncoder(w).Encode(map[string]any{"isValid": false, "invalidReason": "insufficient_funds"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"isValid": true, "payer": payer})
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	E2EEnv
}

func (s *SharedSuite) SetupSuite() {
	s.E2EEnv = *setupE2EEnvironment(s.T())
	require.NotNil(s.T(), s.Router, "Routerのセットアップに失敗")
}

// SetupSubTest waits for background writes of the previous subtest and then wipes
// the suite's Redis database and audit table.
func (s *SharedSuite) SetupSubTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(s.T(), s.Screening.Drain(ctx))
	require.NoError(s.T(), s.Redis.FlushDB(ctx).Err(), "Failed to reset redis state")
	_, err := s.Audit.Exec(ctx, "TRUNCATE screening_audit")
	require.NoError(s.T(), err, "Failed to reset audit state")
	s.Facilitator.Reset()
}
