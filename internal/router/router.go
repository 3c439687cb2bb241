package router

import (
	"time"

	"restopos/internal/config"
	"restopos/internal/handler"
	"restopos/internal/middleware"
	"restopos/internal/repository"
	"restopos/internal/service"
	"restopos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	pontoRepo := repository.NewPontoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	pagamentoRepo := repository.NewPagamentoRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	historicoRepo := repository.NewHistoricoRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	pontoSvc := service.NewPontoService(pontoRepo, catalogoRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, pontoRepo, caixaRepo, pagamentoRepo)
	ajusteSvc := service.NewAjusteService(pedidoRepo)
	pagamentoSvc := service.NewPagamentoService(pedidoRepo, pagamentoRepo, caixaRepo, catalogoRepo)
	caixaSvc := service.NewCaixaService(caixaRepo)
	finalizacaoSvc := service.NewFinalizacaoService(pedidoRepo, pagamentoRepo, historicoRepo, pontoRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	pontoH := handler.NewPontoHandler(pontoSvc)
	pedidoH := handler.NewPedidoHandler(pedidoSvc)
	ajusteH := handler.NewAjusteHandler(ajusteSvc)
	pagamentoH := handler.NewPagamentoHandler(pagamentoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	finalizacaoH := handler.NewFinalizacaoHandler(finalizacaoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		pontos := v1.Group("/pontos")
		{
			pontos.POST("", pontoH.CriarOuRetomar)
			pontos.GET("", pontoH.Listar)
			pontos.POST("/sincronizar", pontoH.Sincronizar)
			pontos.GET("/identificador/:identificador", pontoH.BuscarPorIdentificador)
			pontos.GET("/:id", pontoH.BuscarPorID)
			pontos.PATCH("/:id/status", pontoH.AtualizarStatus)
			pontos.PATCH("/:id/nome", pontoH.AtualizarNome)
			pontos.POST("/:id/reset", pontoH.Resetar)
			pontos.DELETE("/:id", pontoH.Excluir)
		}

		pedidos := v1.Group("/pedidos")
		{
			pedidos.POST("/garantir", pedidoH.Garantir)
			pedidos.GET("/ponto/:pontoId", pedidoH.BuscarPorPonto)
			pedidos.GET("/:id", pedidoH.BuscarPorID)
			pedidos.PUT("/:id", pedidoH.Atualizar)
			pedidos.DELETE("/:id", pedidoH.Excluir)

			pedidos.PUT("/:id/itens", pedidoH.AplicarCarrinho)
			pedidos.GET("/:id/itens", pedidoH.ListarItens)
			pedidos.DELETE("/:id/itens", pedidoH.LimparItens)

			pedidos.PUT("/:id/desconto", ajusteH.AplicarDesconto)
			pedidos.GET("/:id/desconto", ajusteH.ObterDesconto)
			pedidos.DELETE("/:id/desconto", ajusteH.RemoverDesconto)
			pedidos.PUT("/:id/acrescimo", ajusteH.AplicarAcrescimo)
			pedidos.GET("/:id/acrescimo", ajusteH.ObterAcrescimo)
			pedidos.DELETE("/:id/acrescimo", ajusteH.RemoverAcrescimo)

			pedidos.POST("/:id/pagamentos", pagamentoH.Alocar)
			pedidos.POST("/:id/pagamentos/lote", pagamentoH.AlocarLote)
			pedidos.GET("/:id/pagamentos", pagamentoH.Listar)
			pedidos.GET("/:id/pagamentos/resumo", pagamentoH.Resumo)
			pedidos.DELETE("/:id/pagamentos/:pagamentoId", pagamentoH.Desalocar)

			pedidos.POST("/:id/finalizar", finalizacaoH.Finalizar)
		}

		// Item-level operations address the item directly
		itens := v1.Group("/itens")
		{
			itens.PUT("/:id", pedidoH.AtualizarItem)
			itens.DELETE("/:id", pedidoH.ExcluirItem)
		}

		v1.GET("/formas-pagamento", pagamentoH.ListarFormas)

		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", caixaH.Abrir)
			caixa.GET("/status", caixaH.Status)
			caixa.POST("/:id/fechar", caixaH.Fechar)
			caixa.GET("/:id/movimentacoes", caixaH.ListarMovimentacoes)
			caixa.POST("/:id/movimentacoes", caixaH.RegistrarMovimentacao)
			caixa.POST("/:id/recalcular-vendas", caixaH.RecalcularVendas)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
