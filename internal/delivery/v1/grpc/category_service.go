package grpc

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type CategoryService struct {
	UnimplementedCategoryServiceServer
	categoryUC usecase.CategoryUC
	logger     logger.Logger
}

func NewCategoryService(categoryUC usecase.CategoryUC, logger logger.Logger) *CategoryService {
	return &CategoryService{categoryUC: categoryUC, logger: logger}
}

func (g *CategoryService) GetCategory(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	const op = "grpc.GetCategory"

	id, err := parseID(req.GetValue())
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	out, err := g.categoryUC.GetCategory(ctx, &usecase.GetCategoryInput{ID: id})
	if err != nil {
		g.logError(op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return g.response(op, out)
}

func (g *CategoryService) CreateCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.CreateCategory"

	input, err := toCreateCategoryInput(req)
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	out, err := g.categoryUC.CreateCategory(ctx, input)
	if err != nil {
		g.logError(op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return g.response(op, out)
}

func (g *CategoryService) UpdateCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.UpdateCategory"

	input, err := toUpdateCategoryInput(req)
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	out, err := g.categoryUC.UpdateCategory(ctx, input)
	if err != nil {
		g.logError(op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return g.response(op, out)
}

func (g *CategoryService) DeleteCategory(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	const op = "grpc.DeleteCategory"

	id, err := parseID(req.GetValue())
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	if err := g.categoryUC.DeleteCategory(ctx, &usecase.DeleteCategoryInput{ID: id}); err != nil {
		g.logError(op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return &emptypb.Empty{}, nil
}

func (g *CategoryService) ListCategories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.ListCategories"

	input, err := toListCategoriesInput(req)
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	out, err := g.categoryUC.ListCategories(ctx, input)
	if err != nil {
		g.logError(op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	res, err := toGRPCCategoryList(out)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s: failed to build response", op)
		return nil, GRPCErrorResponse(err)
	}

	return res, nil
}

func (g *CategoryService) response(op string, out *usecase.CategoryOutput) (*structpb.Struct, error) {
	res, err := toGRPCCategory(out)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s: failed to build response", op)
		return nil, GRPCErrorResponse(err)
	}

	return res, nil
}

// logError пишет в лог только непредвиденные ошибки, ошибки ввода и отсутствие категории ожидаемы.
func (g *CategoryService) logError(op string, err error) {
	if errors.Is(err, e.ErrInvalidInput) || errors.Is(err, e.ErrNotFound) {
		g.logger.Debugf("%s: %v", op, err)
		return
	}

	g.logger.Errorf(e.Wrap(op, err), "%s", op)
}
