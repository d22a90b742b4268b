package handlers

import (
	"github.com/jmoiron/sqlx"

	"arthaus/internal/config"
	"arthaus/internal/repos"
	"arthaus/internal/services"
	"arthaus/internal/storage"
)

type Deps struct {
	ArtHandler        *ArtHandler
	BiddingHandler    *BiddingHandler
	ExhibitionHandler *ExhibitionHandler
	OrderHandler      *OrderHandler
	UserHandler       *UserHandler
	AdminHandler      *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, media *storage.MediaStore) *Deps {
	artRepo := repos.NewArtRepo(db)
	bidRepo := repos.NewBiddingRepo(db)
	exRepo := repos.NewExhibitionRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	artSvc := services.NewArtService(artRepo, bidRepo)
	bidSvc := services.NewBiddingService(artRepo, bidRepo)
	exSvc := services.NewExhibitionService(exRepo)
	orderSvc := services.NewOrderService(orderRepo, artRepo)

	return &Deps{
		ArtHandler:        &ArtHandler{Arts: artSvc, Media: media},
		BiddingHandler:    &BiddingHandler{Bidding: bidSvc},
		ExhibitionHandler: &ExhibitionHandler{Exhibitions: exSvc, Reports: services.ReportService{}},
		OrderHandler:      &OrderHandler{Orders: orderSvc, Media: media, Users: userRepo},
		UserHandler:       &UserHandler{Auth: auth, Users: userRepo},
		AdminHandler:      &AdminHandler{Auth: auth},
	}
}
