package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/base/database/redisclient"
	"github.com/x-xyz/goauction/base/goroutine"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	bValidator "github.com/x-xyz/goauction/base/validator"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/erc721"
	"github.com/x-xyz/goauction/domain/keys"
	mmiddleware "github.com/x-xyz/goauction/middleware"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/cache/provider"
	"github.com/x-xyz/goauction/service/cache/provider/compound"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/goauction/service/cache/provider/redis"
	"github.com/x-xyz/goauction/service/chain"
	"github.com/x-xyz/goauction/service/chain/contract"
	"github.com/x-xyz/goauction/service/locker"
	"github.com/x-xyz/goauction/service/query"
	"github.com/x-xyz/goauction/service/redis"
	auction_delivery "github.com/x-xyz/goauction/stores/auction/delivery/http"
	auction_ws "github.com/x-xyz/goauction/stores/auction/delivery/ws"
	auction_listener "github.com/x-xyz/goauction/stores/auction/listener"
	auction_repository "github.com/x-xyz/goauction/stores/auction/repository"
	auction_usecase "github.com/x-xyz/goauction/stores/auction/usecase"
	auth_delivery "github.com/x-xyz/goauction/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/goauction/stores/auth/usecase"
	erc721_delivery "github.com/x-xyz/goauction/stores/erc721/delivery/http"
	erc721_repository "github.com/x-xyz/goauction/stores/erc721/repository"
	escrow_delivery "github.com/x-xyz/goauction/stores/escrow/delivery/http"
	escrow_repository "github.com/x-xyz/goauction/stores/escrow/repository"
	escrow_usecase "github.com/x-xyz/goauction/stores/escrow/usecase"
	hc_delivery "github.com/x-xyz/goauction/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/goauction/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/goauction/stores/healthcheck/usecase"

	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/x-xyz/goauction/app/api/docs"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.example.yaml", "path of the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if err := log.Init(viper.GetString("log.level"), viper.GetBool("log.development")); err != nil {
		panic(err)
	}
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func setDefaults() {
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("mongo.authDBName", "admin")
	viper.SetDefault("mongo.dbName", "auction")
	viper.SetDefault("redis.name", "auction")
	viper.SetDefault("auth.tokenTtl", 24*time.Hour)
	viper.SetDefault("auth.nonceTtl", 5*time.Minute)
	viper.SetDefault("chain.receiptTimeout", 2*time.Minute)
	viper.SetDefault("auction.lockTtl", 5*time.Minute)
	viper.SetDefault("auction.lockWait", 10*time.Second)
	viper.SetDefault("auction.cacheTtl", 30*time.Second)
	viper.SetDefault("auction.cacheSize", 32*1024*1024)
	viper.SetDefault("auction.eventsCacheTtl", 2*time.Second)
	viper.SetDefault("worker.poolSize", 16)
	viper.SetDefault("worker.queueLength", 1024)
	viper.SetDefault("worker.timeout", time.Second)
	viper.SetDefault("discord.siteUrl", "https://x.xyz")
	viper.SetDefault("swagger.enabled", true)
}

//	@title			Auction House API
//	@version		1.0
//	@description	Escrow backed English auctions of ERC-721 tokens.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrive token from #/auth/post_auth_sign and apply with `bearer {token}`
func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		// gzip breaks the websocket upgrade
		Skipper: func(c echo.Context) bool { return c.Path() == "/auction/stream" },
	}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// init storage, the memory store keeps everything in process for development
	var q query.Mongo
	if viper.GetBool("mongo.enabled") {
		context.Info("init mongo")
		mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Cfg{
			Uri:            viper.GetString("mongo.uri"),
			AuthDb:         viper.GetString("mongo.authDBName"),
			Db:             viper.GetString("mongo.dbName"),
			Ssl:            viper.GetBool("mongo.enableSSL"),
			Safe:           true,
			PoolMultiplier: 2,
		})
		q = query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
	} else {
		context.Warn("mongo disabled, using in-memory store")
		q = query.NewMemory()
	}

	// init Redis service
	var redisCache redis.Service
	if viper.GetBool("redis.enabled") {
		context.Info("init redis cache")
		redisCacheName := viper.GetString("redis.name")
		redisCachePool := redisclient.MustConnectRedis(redisclient.Cfg{
			Uri:            viper.GetString("redis.uri"),
			Password:       viper.GetString("redis.password"),
			PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
			Retry:          true,
		})
		redisCache = redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
			Src: redisCachePool,
		})
	}

	// local cache first, redis shared between instances
	cacheProvider := func(name string) provider.Provider {
		local := primitive.NewPrimitive(name, viper.GetInt("auction.cacheSize"))
		if redisCache == nil {
			return local
		}
		return compound.NewCompound([]provider.Provider{local, redisProvider.NewRedis(redisCache)})
	}

	lockerCfg := locker.Cfg{
		Ttl:  viper.GetDuration("auction.lockTtl"),
		Wait: viper.GetDuration("auction.lockWait"),
	}
	var auctionLocker locker.Locker
	if redisCache != nil {
		auctionLocker = locker.NewRedis(lockerCfg, redisCache)
	} else {
		auctionLocker = locker.NewMemory(lockerCfg)
	}

	// init asset registry, tokens live either on chain or in our own ledger
	var registry erc721.Registry
	var erc1271 contract.Erc1271Contract
	if viper.GetBool("chain.enabled") {
		context.Info("init chain")
		chainService, err := chain.NewClient(context, &chain.ClientCfg{
			ChainId:        viper.GetInt32("chain.chainId"),
			RpcUrl:         viper.GetString("chain.rpcUrl"),
			SenderKey:      viper.GetString("chain.operatorKey"),
			ReceiptTimeout: viper.GetDuration("chain.receiptTimeout"),
		})
		if err != nil {
			context.WithField("err", err).Panic("chain.NewClient failed")
		}
		// End holds the auction lock while waiting for the transfer receipt
		receiptTimeout := viper.GetDuration("chain.receiptTimeout")
		if receiptTimeout <= 0 {
			receiptTimeout = chain.DefaultReceiptTimeout
		}
		if err := lockerCfg.Outlives(receiptTimeout); err != nil {
			context.WithField("err", err).Panic("auction.lockTtl must exceed chain.receiptTimeout")
		}
		registry = contract.NewErc721(chainService)
		erc1271 = contract.NewErc1271(chainService)
	} else {
		context.Warn("chain disabled, using ledger registry")
		registry = erc721_repository.NewLedger(q, domain.Address(viper.GetString("registry.operator")))
	}

	// listeners run on the pool after commit
	pool := goroutine.NewPool(viper.GetInt("worker.poolSize"), viper.GetInt("worker.queueLength"), viper.GetDuration("worker.timeout"))
	defer pool.Release()
	hub := auction_ws.NewHub(viper.GetStringSlice("server.wsOrigins")...)
	listeners := []auction.Listener{hub}
	if viper.GetBool("discord.enabled") {
		discord, err := auction_listener.NewDiscordListener(auction_listener.DiscordConfig{
			ChainId:          domain.ChainId(viper.GetInt32("chain.chainId")),
			DiscordBotKey:    viper.GetString("discord.botKey"),
			DiscordChannelId: viper.GetString("discord.channelId"),
			SiteUrl:          viper.GetString("discord.siteUrl"),
		})
		if err != nil {
			context.WithField("err", err).Panic("auction_listener.NewDiscordListener failed")
		}
		listeners = append(listeners, discord)
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(q, redisCache)
	escrowRepo := escrow_repository.NewEscrowRepo(q)
	auctionRepo := auction_repository.NewAuctionRepo(q)
	eventRepo := auction_repository.NewEventRepo(q)

	hc := hc_usecase.New(hcRepo)
	escrow := escrow_usecase.New(&escrow_usecase.EscrowUseCaseCfg{
		Query: q,
		Repo:  escrowRepo,
	})
	auctionUsecase := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		Query:     q,
		Repo:      auctionRepo,
		EventRepo: eventRepo,
		Escrow:    escrow,
		Registry:  registry,
		Locker:    auctionLocker,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("auction.cacheTtl"),
			Pfx:   keys.PfxAuctionCache,
			Cache: cacheProvider("auction"),
		}),
		Pool:      pool,
		Listeners: listeners,
	})
	auth := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret:   viper.GetString("auth.jwtSecret"),
		TokenTtl:    viper.GetDuration("auth.tokenTtl"),
		MsgTemplate: viper.GetString("auth.signatureMsg"),
		Nonces: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("auth.nonceTtl"),
			Pfx:   keys.PfxNonce,
			Cache: cacheProvider("nonce"),
		}),
		Erc1271: erc1271,
	})
	eventsCache := mmiddleware.CacheHttp(cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("auction.eventsCacheTtl"),
		Pfx:   keys.PfxHttpCache,
		Cache: cacheProvider("http"),
	}))

	adminAddresses := []domain.Address{}
	for _, a := range viper.GetStringSlice("admin.addresses") {
		adminAddresses = append(adminAddresses, domain.Address(a).ToLower())
	}
	auth_middleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	auction_ws.New(e, hub)
	auction_delivery.New(e, auctionUsecase, auth_middleware, eventsCache)
	escrow_delivery.New(e, escrow, auth_middleware)
	erc721_delivery.New(e, registry, auth_middleware)

	if viper.GetBool("swagger.enabled") {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
