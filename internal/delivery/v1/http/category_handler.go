package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	logger          logger.Logger
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase, logger: logger}
}

// createCategory
//
//	@Summary		Создание категории
//	@Description	Создает новую категорию каталога
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateCategoryRequest	true	"Категория"
//	@Success		201		{object}	CategoryResponse
//	@Failure		400		{object}	ErrorResponse	"Некорректный запрос"
//	@Failure		422		{object}	ErrorResponse	"Нарушены правила категории"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/categories [post]
func (h *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := h.categoryUsecase.CreateCategory(r.Context(), req.toInput())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newCategoryResponse(out))
}

// getCategory
//
//	@Summary	Получение категории
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		string	true	"ID категории"	format(uuid)
//	@Success	200	{object}	CategoryResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id} [get]
func (h *CategoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := h.categoryUsecase.GetCategory(r.Context(), &usecase.GetCategoryInput{ID: id})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCategoryResponse(out))
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Param		page		query		int		false	"Страница"		default(1)	minimum(1)	maximum(100000)
//	@Param		per_page	query		int		false	"Размер страницы"	default(15)
//	@Param		search		query		string	false	"Поиск по имени"
//	@Param		sort		query		string	false	"Поле сортировки"	Enums(name, createdAt)
//	@Param		dir			query		string	false	"Направление"		Enums(asc, desc)
//	@Success	200			{object}	ListCategoriesResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/categories [get]
func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	input, err := parseListQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := h.categoryUsecase.ListCategories(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newListCategoriesResponse(out))
}

// updateCategory
//
//	@Summary	Изменение категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"ID категории"	format(uuid)
//	@Param		request	body		UpdateCategoryRequest	true	"Новые значения"
//	@Success	200		{object}	CategoryResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/categories/{id} [put]
func (h *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req UpdateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := h.categoryUsecase.UpdateCategory(r.Context(), req.toInput(id))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCategoryResponse(out))
}

// deleteCategory
//
//	@Summary	Удаление категории
//	@Tags		categories
//	@Param		id	path	string	true	"ID категории"	format(uuid)
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id} [delete]
func (h *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.categoryUsecase.DeleteCategory(r.Context(), &usecase.DeleteCategoryInput{ID: id}); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fail пишет ответ с ошибкой. Клиентские ошибки логируются как предупреждения, серверные как ошибки.
func (h *CategoryHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := WriteError(w, err)
	if code >= http.StatusInternalServerError {
		h.logger.Errorf(err, "%d %s %s", code, r.Method, r.URL.Path)
		return
	}

	h.logger.Warnf("%d %s %s: %v", code, r.Method, r.URL.Path, err)
}
