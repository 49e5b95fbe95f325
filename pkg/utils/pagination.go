package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/waitlight/vod-pipeline/pkg/httpErrors"
)

const (
	defaultPage = 0
	defaultSize = 50
)

type Pagination struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func (p *Pagination) SetPage(queryPage string) error {
	if queryPage == "" {
		p.Page = defaultPage
		return nil
	}
	page, err := strconv.Atoi(queryPage)
	if err != nil || page < 0 {
		return httpErrors.NewInvalidRequestError("Invalid pagination")
	}
	p.Page = page
	return nil
}

func (p *Pagination) SetSize(querySize string) error {
	if querySize == "" {
		p.Size = defaultSize
		return nil
	}
	size, err := strconv.Atoi(querySize)
	if err != nil || size <= 0 {
		return httpErrors.NewInvalidRequestError("Invalid pagination")
	}
	p.Size = size
	return nil
}

func (p *Pagination) GetPage() int {
	return p.Page
}

func (p *Pagination) GetSize() int {
	return p.Size
}

func (p *Pagination) GetOffset() int {
	return p.Page * p.Size
}

func (p *Pagination) GetLimit() int {
	return p.Size
}

func GetPaginationFromCtx(c echo.Context) (*Pagination, error) {
	p := &Pagination{}
	if err := p.SetPage(c.QueryParam("page")); err != nil {
		return nil, err
	}
	if err := p.SetSize(c.QueryParam("size")); err != nil {
		return nil, err
	}
	return p, nil
}

func GetTotalPages(totalCount int, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

func GetHasMore(currPage, totalCount, pageSize int) bool {
	return (currPage+1)*pageSize < totalCount
}
