package request

type QuoteQuery struct {
	Days      int    `form:"days" binding:"required,min=1"`
	StartDate string `form:"startDate" binding:"required"`
}
