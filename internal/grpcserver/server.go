package grpcserver

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"garagehub/internal/garage"
	"garagehub/internal/query"
	"garagehub/pkg/grpc/garagepb"
	"garagehub/pkg/models"
)

type Server struct {
	garagepb.UnimplementedCatalogServiceServer
	Views  *garage.Views
	Loader garage.Reloader
}

func NewServer(views *garage.Views, l garage.Reloader) *Server {
	return &Server{Views: views, Loader: l}
}

func (s *Server) QueryCars(ctx context.Context, req *garagepb.QueryCarsRequest) (*garagepb.QueryCarsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	if sort := strings.TrimSpace(req.GetSort()); sort != "" && !query.SortMode(sort).Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown sort %q", sort)
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	page := s.Views.Cars(query.Spec{
		Text:              strings.TrimSpace(req.GetQ()),
		Manufacturer:      req.Manufacturer,
		Series:            req.Series,
		Brand:             req.Brand,
		VariantsOnly:      req.VariantsOnly,
		DuplicatesOnly:    req.Duplicates,
		TreasureHuntsOnly: req.TreasureHunts,
		Gifter:            req.Gifter,
		Sort:              query.SortMode(req.GetSort()),
		Page:              int(req.Page),
		PageSize:          int(req.PageSize),
	})

	resp := &garagepb.QueryCarsResponse{
		SnapshotId: page.SnapshotID,
		Items:      make([]*garagepb.Car, 0, len(page.Items)),
		Total:      int32(page.Total),
		Page:       int32(page.Page),
		PageSize:   int32(page.PageSize),
		Pages:      int32(page.Pages),
		Start:      int32(page.Start),
		End:        int32(page.End),
		NoResults:  page.NoResults,
		Summary:    page.Summary,
	}
	for _, card := range page.Items {
		resp.Items = append(resp.Items, cardToProto(card))
	}
	return resp, nil
}

func (s *Server) GetCar(ctx context.Context, req *garagepb.GetCarRequest) (*garagepb.GetCarResponse, error) {
	id := strings.TrimSpace(req.GetId())
	name := strings.TrimSpace(req.GetName())
	if id == "" && name == "" {
		return nil, status.Error(codes.InvalidArgument, "id or name required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	var (
		d   garage.Details
		err error
	)
	if id != "" {
		d, err = s.Views.Details(id)
	} else {
		d, err = s.Views.Share(name)
	}
	if errors.Is(err, garage.ErrNotFound) {
		return nil, status.Error(codes.NotFound, "not found")
	}
	if err != nil {
		return nil, status.Error(codes.Internal, "get failed")
	}

	car := carToProto(d.Car)
	car.Image = d.BestImage
	car.Images = d.Images
	car.BrandLogo = d.BrandLogo

	resp := &garagepb.GetCarResponse{
		Car:      car,
		Variants: make([]*garagepb.Car, 0, len(d.Variants)),
		Related:  make([]*garagepb.Car, 0, len(d.Related)),
		ShareUrl: d.ShareURL,
	}
	for _, v := range d.Variants {
		resp.Variants = append(resp.Variants, &garagepb.Car{
			VariantId:    v.VariantID,
			Image:        v.Image,
			VariantLabel: v.Label,
		})
	}
	for _, r := range d.Related {
		resp.Related = append(resp.Related, cardToProto(r))
	}
	return resp, nil
}

func (s *Server) Home(ctx context.Context, _ *garagepb.HomeRequest) (*garagepb.HomeResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	h := s.Views.Home()

	resp := &garagepb.HomeResponse{
		SnapshotId:    h.SnapshotID,
		Items:         int32(h.Summary.Items),
		TotalOwned:    int32(h.Summary.TotalOwned),
		Manufacturers: int32(h.Summary.Manufacturers),
		Series:        int32(h.Summary.Series),
		Brands:        int32(h.Summary.Brands),
		TreasureHunts: int32(h.Summary.TreasureHunts),
		TopBrands:     make([]*garagepb.BrandCount, 0, len(h.TopBrands)),
		TopGifters:    make([]*garagepb.GifterCount, 0, len(h.TopGifters)),
		HallOfFame:    carsToProto(h.HallOfFame),
		Recent:        carsToProto(h.Recent),
	}
	for _, b := range h.TopBrands {
		resp.TopBrands = append(resp.TopBrands, &garagepb.BrandCount{Name: b.Name, Count: int32(b.Count.Count), Logo: b.Logo})
	}
	for _, g := range h.TopGifters {
		resp.TopGifters = append(resp.TopGifters, &garagepb.GifterCount{Name: g.Name, Count: int32(g.Count)})
	}
	return resp, nil
}

func (s *Server) Status(ctx context.Context, _ *garagepb.StatusRequest) (*garagepb.StatusResponse, error) {
	st := s.Loader.Status()
	resp := &garagepb.StatusResponse{
		State:      string(st.State),
		Source:     st.Source,
		SnapshotId: st.SnapshotID,
		Items:      int32(st.Items),
		LastError:  st.LastError,
		Attempts:   int32(st.Attempts),
	}
	if !st.LastSuccess.IsZero() {
		resp.LastSuccessUnix = st.LastSuccess.Unix()
	}
	return resp, nil
}

// ready fails with Unavailable until the first catalog load succeeded.
func (s *Server) ready() error {
	if s.Views.Snapshot().ID == "" {
		msg := "catalog not loaded"
		if e := s.Loader.Status().LastError; e != "" {
			msg += ": " + e
		}
		return status.Error(codes.Unavailable, msg)
	}
	return nil
}

func cardToProto(card garage.Card) *garagepb.Car {
	out := carToProto(card.Car)
	out.Image = card.Image
	out.BrandLogo = card.BrandLogo
	out.Copies = int32(card.Copies)
	return out
}

func carsToProto(cars []models.Car) []*garagepb.Car {
	out := make([]*garagepb.Car, 0, len(cars))
	for _, c := range cars {
		out = append(out, carToProto(c))
	}
	return out
}

func carToProto(c models.Car) *garagepb.Car {
	return &garagepb.Car{
		VariantId:    c.VariantID,
		Name:         c.Name,
		Model:        c.Model,
		Brand:        c.Brand,
		Series:       c.Series,
		Manufacturer: c.Manufacturer,
		Year:         c.Year,
		Colour:       c.Colour,
		Serial:       c.Serial,
		Image:        c.BestImage(),
		Images:       c.Images,
		Copies:       int32(c.Quantity()),
		Featured:     c.Featured,
		TreasureHunt: c.TreasureHunt,
		Gifter:       c.Gifter,
		Description:  c.Description,
		VariantLabel: c.VariantLabel(),
	}
}
