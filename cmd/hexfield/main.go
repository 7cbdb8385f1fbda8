package main

import (
	"os"
	"time"

	"github.com/walterdalec/hexfield/internal/api"
	"github.com/walterdalec/hexfield/internal/boardgen"
	"github.com/walterdalec/hexfield/internal/config"
	"github.com/walterdalec/hexfield/internal/constants"
	"github.com/walterdalec/hexfield/internal/logging"
	"github.com/walterdalec/hexfield/internal/service"
	"github.com/walterdalec/hexfield/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load the ability/item catalog (required). Path may be provided via
	// HEXFIELD_CONFIG env var or defaults to ./hexfield_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./hexfield_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid hexfield configuration", err, logging.Fields{"config_path": configPath, "hint": "create a hexfield_config.json with an 'ability_list' array (id,name,kind,ap_cost,stamina_cost,range,power,status) and optional keys: item_list, server.address, max_rounds, hazard_damage, board_kinds_path"})
	}

	gen := loadBoardKinds(cfg)

	// Allow the DB path to be configured via HEXFIELD_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/hexfield.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	arena := service.NewArena(repo, gen, cfg.Catalog, cfg.MaxRounds, cfg.HazardDamage)
	handler := api.NewBattleHandler(arena)

	// Background scanner: periodically force-resolve battles that have been
	// idle past the stale TTL so abandoned battles reach a terminal phase.
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-cfg.StaleBattleTTL)
			if _, err := arena.ExpireStaleBattles(cutoff); err != nil {
				logging.Error("stale battle scanner failed", err, nil)
			}
		}
	}()

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteBoardKinds, handler.BoardKinds)

		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattles, handler.ListOpenBattles)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.DELETE(constants.RouteBattleByID, handler.DeleteBattle)
		apiRoutes.POST(constants.RouteBattleOrders, handler.SubmitOrders)
		apiRoutes.POST(constants.RouteBattleResolve, handler.Resolve)
		apiRoutes.GET(constants.RouteBattleEvents, handler.Events)
		apiRoutes.GET(constants.RouteBattleResult, handler.GetResult)
		apiRoutes.GET(constants.RouteBattleStream, handler.Stream)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

// loadBoardKinds builds the board generator, preferring an external kind
// table when one is configured.
func loadBoardKinds(cfg *config.LoadedConfig) *boardgen.Generator {
	path := os.Getenv(constants.EnvBoardKinds)
	if path == "" {
		path = cfg.BoardKindsPath
	}
	if path == "" {
		return boardgen.DefaultGenerator()
	}
	kinds, err := boardgen.LoadKinds(path)
	if err != nil {
		logging.Fatal("Failed to load board kind table", err, logging.Fields{"path": path})
	}
	return boardgen.NewGenerator(kinds)
}
