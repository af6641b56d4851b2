package service

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage < 1 {
		return fallback
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}
