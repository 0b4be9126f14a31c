package cmd

import (
	"fmt"
	"strings"

	"hotel-deals/config"
	"hotel-deals/scraper"
	"hotel-deals/scraper/booking"
	"hotel-deals/scraper/hotelapi"
	"hotel-deals/scraper/mock"
	"hotel-deals/utils"
)

// newSource builds the listing source named in cfg.Source.
func newSource(cfg *config.Config, logger *utils.Logger) (scraper.Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case "", "booking":
		sel, err := config.LoadSelectors(cfg.SelectorsPath)
		if err != nil {
			return nil, err
		}
		var fetcher scraper.Fetcher = scraper.NewHTTPFetcher(cfg.RequestTimeout, cfg.AcceptLanguage, logger)
		if cfg.UseBrowser {
			fetcher = scraper.NewBrowserFetcher(cfg.ChromeBin, cfg.RequestTimeout, logger)
		}
		return booking.New(fetcher, cfg.SearchURL, sel, logger), nil

	case "hotelapi":
		fetcher := scraper.NewHTTPFetcher(cfg.RequestTimeout, cfg.AcceptLanguage, logger)
		return hotelapi.New(fetcher, cfg.HotelAPIURL, cfg.HotelAPISize, logger), nil

	case "mock":
		return mock.New(), nil
	}
	return nil, fmt.Errorf("unknown listing source %q (want booking, hotelapi or mock)", cfg.Source)
}
