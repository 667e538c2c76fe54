package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type mockCategoryUC struct {
	mock.Mock
}

func (m *mockCategoryUC) CreateCategory(ctx context.Context, input *usecase.CreateCategoryInput) (*usecase.CategoryOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.CategoryOutput)
	return out, args.Error(1)
}

func (m *mockCategoryUC) GetCategory(ctx context.Context, input *usecase.GetCategoryInput) (*usecase.CategoryOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.CategoryOutput)
	return out, args.Error(1)
}

func (m *mockCategoryUC) UpdateCategory(ctx context.Context, input *usecase.UpdateCategoryInput) (*usecase.CategoryOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.CategoryOutput)
	return out, args.Error(1)
}

func (m *mockCategoryUC) DeleteCategory(ctx context.Context, input *usecase.DeleteCategoryInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *mockCategoryUC) ListCategories(ctx context.Context, input *usecase.ListCategoriesInput) (*usecase.ListCategoriesOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.ListCategoriesOutput)
	return out, args.Error(1)
}

// startTestServer поднимает сервер на bufconn и возвращает подключённого клиента.
func startTestServer(t *testing.T) (*CategoryServiceClient, *mockCategoryUC) {
	t.Helper()

	uc := &mockCategoryUC{}
	lis := bufconn.Listen(1 << 20)

	srv := NewGRPCServer(&cfg.GRPCConfig{}, logger.NewNopLogger())
	srv.RegisterServices(uc)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
		uc.AssertExpectations(t)
	})

	return NewCategoryServiceClient(conn), uc
}

func sampleOutput() *usecase.CategoryOutput {
	return &usecase.CategoryOutput{
		ID:          uuid.MustParse("6f1c1f9a-3a54-4d8b-9b5b-3d2f0c8f6a11"),
		Name:        "Movies",
		Description: "Feature films",
		IsActive:    true,
		CreatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetCategory_OK(t *testing.T) {
	client, uc := startTestServer(t)
	out := sampleOutput()

	uc.On("GetCategory", mock.Anything, &usecase.GetCategoryInput{ID: out.ID}).Return(out, nil).Once()

	res, err := client.GetCategory(context.Background(), wrapperspb.String(out.ID.String()))
	require.NoError(t, err)

	fields := res.GetFields()
	assert.Equal(t, out.ID.String(), fields["id"].GetStringValue())
	assert.Equal(t, "Movies", fields["name"].GetStringValue())
	assert.Equal(t, "Feature films", fields["description"].GetStringValue())
	assert.True(t, fields["is_active"].GetBoolValue())
	assert.Equal(t, "2024-03-01T12:00:00Z", fields["created_at"].GetStringValue())
}

func TestGetCategory_InvalidID(t *testing.T) {
	client, _ := startTestServer(t)

	_, err := client.GetCategory(context.Background(), wrapperspb.String("nope"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetCategory_EmptyIDReachesValidator(t *testing.T) {
	client, uc := startTestServer(t)

	uc.On("GetCategory", mock.Anything, &usecase.GetCategoryInput{ID: uuid.Nil}).
		Return(nil, usecase.NewInputValidationError([]usecase.ValidationFailure{
			{PropertyName: "Id", ErrorMessage: "'Id' deve ser informado."},
		})).Once()

	_, err := client.GetCategory(context.Background(), wrapperspb.String(""))

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "'Id' deve ser informado.", st.Message())
}

func TestGetCategory_NotFound(t *testing.T) {
	client, uc := startTestServer(t)
	id := uuid.New()

	uc.On("GetCategory", mock.Anything, &usecase.GetCategoryInput{ID: id}).
		Return(nil, e.Wrap("CategoryRepo.Get", e.ErrNotFound)).Once()

	_, err := client.GetCategory(context.Background(), wrapperspb.String(id.String()))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCreateCategory_OK(t *testing.T) {
	client, uc := startTestServer(t)

	uc.On("CreateCategory", mock.Anything, mock.MatchedBy(func(in *usecase.CreateCategoryInput) bool {
		return in.Name == "Movies" && in.Description != nil && *in.Description == "Feature films" && !in.IsActive
	})).Return(sampleOutput(), nil).Once()

	req, err := structpb.NewStruct(map[string]any{
		"name":        "Movies",
		"description": "Feature films",
		"is_active":   false,
	})
	require.NoError(t, err)

	res, err := client.CreateCategory(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Movies", res.GetFields()["name"].GetStringValue())
}

func TestCreateCategory_NullDescriptionIsNil(t *testing.T) {
	client, uc := startTestServer(t)

	uc.On("CreateCategory", mock.Anything, mock.MatchedBy(func(in *usecase.CreateCategoryInput) bool {
		return in.Description == nil && in.IsActive
	})).Return(nil, domain.NewEntityValidationError("Description should not be null")).Once()

	req, err := structpb.NewStruct(map[string]any{"name": "Movies", "description": nil})
	require.NoError(t, err)

	_, err = client.CreateCategory(context.Background(), req)

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "Description should not be null", st.Message())
}

func TestCreateCategory_WrongFieldType(t *testing.T) {
	client, _ := startTestServer(t)

	req, err := structpb.NewStruct(map[string]any{"name": 42.0})
	require.NoError(t, err)

	_, err = client.CreateCategory(context.Background(), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCreateCategory_InternalError(t *testing.T) {
	client, uc := startTestServer(t)

	uc.On("CreateCategory", mock.Anything, mock.Anything).Return(nil, errors.New("db is down")).Once()

	req, err := structpb.NewStruct(map[string]any{"name": "Movies", "description": ""})
	require.NoError(t, err)

	_, err = client.CreateCategory(context.Background(), req)

	st, _ := status.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, e.ErrInternalServerError.Error(), st.Message())
}

func TestUpdateCategory_OK(t *testing.T) {
	client, uc := startTestServer(t)
	out := sampleOutput()

	uc.On("UpdateCategory", mock.Anything, mock.MatchedBy(func(in *usecase.UpdateCategoryInput) bool {
		return in.ID == out.ID && in.Name == "Movies" && in.Description == nil &&
			in.IsActive != nil && !*in.IsActive
	})).Return(out, nil).Once()

	req, err := structpb.NewStruct(map[string]any{
		"id":        out.ID.String(),
		"name":      "Movies",
		"is_active": false,
	})
	require.NoError(t, err)

	res, err := client.UpdateCategory(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, out.ID.String(), res.GetFields()["id"].GetStringValue())
}

func TestUpdateCategory_InvalidID(t *testing.T) {
	client, _ := startTestServer(t)

	req, err := structpb.NewStruct(map[string]any{"id": "nope", "name": "Movies"})
	require.NoError(t, err)

	_, err = client.UpdateCategory(context.Background(), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestDeleteCategory_OK(t *testing.T) {
	client, uc := startTestServer(t)
	id := uuid.New()

	uc.On("DeleteCategory", mock.Anything, &usecase.DeleteCategoryInput{ID: id}).Return(nil).Once()

	_, err := client.DeleteCategory(context.Background(), wrapperspb.String(id.String()))
	require.NoError(t, err)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	client, uc := startTestServer(t)
	id := uuid.New()

	uc.On("DeleteCategory", mock.Anything, &usecase.DeleteCategoryInput{ID: id}).
		Return(e.Wrap("CategoryRepo.GetForUpdate", e.ErrNotFound)).Once()

	_, err := client.DeleteCategory(context.Background(), wrapperspb.String(id.String()))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestListCategories_OK(t *testing.T) {
	client, uc := startTestServer(t)
	out := sampleOutput()

	uc.On("ListCategories", mock.Anything, &usecase.ListCategoriesInput{
		Page:    2,
		PerPage: 10,
		Search:  "mov",
		Sort:    "createdAt",
		Dir:     usecase.SortDesc,
	}).Return(&usecase.ListCategoriesOutput{
		Page:    2,
		PerPage: 10,
		Total:   11,
		Items:   []usecase.CategoryOutput{*out},
	}, nil).Once()

	req, err := structpb.NewStruct(map[string]any{
		"page":     2,
		"per_page": 10,
		"search":   "mov",
		"sort":     "createdAt",
		"dir":      "desc",
	})
	require.NoError(t, err)

	res, err := client.ListCategories(context.Background(), req)
	require.NoError(t, err)

	fields := res.GetFields()
	assert.Equal(t, float64(2), fields["page"].GetNumberValue())
	assert.Equal(t, float64(10), fields["per_page"].GetNumberValue())
	assert.Equal(t, float64(11), fields["total"].GetNumberValue())

	items := fields["items"].GetListValue().GetValues()
	require.Len(t, items, 1)
	assert.Equal(t, "Movies", items[0].GetStructValue().GetFields()["name"].GetStringValue())
}

func TestListCategories_FractionalPage(t *testing.T) {
	client, _ := startTestServer(t)

	req, err := structpb.NewStruct(map[string]any{"page": 1.5})
	require.NoError(t, err)

	_, err = client.ListCategories(context.Background(), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestUnimplementedCategoryServiceServer(t *testing.T) {
	var srv UnimplementedCategoryServiceServer

	_, err := srv.ListCategories(context.Background(), &structpb.Struct{})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}
