package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/dmarais/go-autoquote/internal/core"
)

// QuoteItem is the stored shape of a quote. Money fields travel as decimal
// strings; timestamps as RFC3339.
type QuoteItem struct {
	ID               string   `dynamodbav:"id"`
	FinalPremium     string   `dynamodbav:"final_premium"`
	MonthlyPremium   string   `dynamodbav:"monthly_premium"`
	CoverageAmount   string   `dynamodbav:"coverage_amount"`
	Deductible       string   `dynamodbav:"deductible"`
	ValidUntil       string   `dynamodbav:"valid_until"`
	CreatedAt        string   `dynamodbav:"created_at"`
	VehicleMake      string   `dynamodbav:"vehicle_make"`
	VehicleModel     string   `dynamodbav:"vehicle_model"`
	VehicleYear      int      `dynamodbav:"vehicle_year"`
	VehicleVIN       string   `dynamodbav:"vehicle_vin"`
	VehicleValue     string   `dynamodbav:"vehicle_value"`
	DriverName       string   `dynamodbav:"driver_name"`
	DriverLicense    string   `dynamodbav:"driver_license"`
	AppliedDiscounts []string `dynamodbav:"applied_discounts"`
}

func (i QuoteItem) ToCore() core.Quote {
	validUntil, _ := time.Parse(time.RFC3339, i.ValidUntil)
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	return core.Quote{
		ID:               i.ID,
		FinalPremium:     parseDecimal(i.FinalPremium),
		MonthlyPremium:   parseDecimal(i.MonthlyPremium),
		CoverageAmount:   parseDecimal(i.CoverageAmount),
		Deductible:       parseDecimal(i.Deductible),
		ValidUntil:       validUntil,
		CreatedAt:        createdAt,
		VehicleMake:      i.VehicleMake,
		VehicleModel:     i.VehicleModel,
		VehicleYear:      i.VehicleYear,
		VehicleVIN:       i.VehicleVIN,
		VehicleValue:     parseDecimal(i.VehicleValue),
		DriverName:       i.DriverName,
		DriverLicense:    i.DriverLicense,
		AppliedDiscounts: i.AppliedDiscounts,
	}
}

func quoteItemFromCore(q core.Quote) QuoteItem {
	return QuoteItem{
		ID:               q.ID,
		FinalPremium:     q.FinalPremium.String(),
		MonthlyPremium:   q.MonthlyPremium.String(),
		CoverageAmount:   q.CoverageAmount.String(),
		Deductible:       q.Deductible.String(),
		ValidUntil:       q.ValidUntil.Format(time.RFC3339),
		CreatedAt:        q.CreatedAt.Format(time.RFC3339),
		VehicleMake:      q.VehicleMake,
		VehicleModel:     q.VehicleModel,
		VehicleYear:      q.VehicleYear,
		VehicleVIN:       q.VehicleVIN,
		VehicleValue:     q.VehicleValue.String(),
		DriverName:       q.DriverName,
		DriverLicense:    q.DriverLicense,
		AppliedDiscounts: q.AppliedDiscounts,
	}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

type QuoteRepo struct {
	client *dynamodb.Client
	clock  func() time.Time
}

func NewQuoteRepo(client *dynamodb.Client) *QuoteRepo {
	return &QuoteRepo{client: client, clock: time.Now}
}

// Save writes the quote exactly once; a second write with the same id
// fails the condition and maps to core.ErrConflict. CreatedAt is stamped
// here on first persistence.
func (r *QuoteRepo) Save(ctx context.Context, q core.Quote) (core.Quote, error) {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = r.clock().UTC()
	}

	item := quoteItemFromCore(q)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return core.Quote{}, fmt.Errorf("quotes.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return core.Quote{}, fmt.Errorf("quotes.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableQuotes),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.Quote{}, core.ErrConflict
		}
		return core.Quote{}, fmt.Errorf("quotes.putItem: %w", err)
	}

	return q, nil
}

func (r *QuoteRepo) FindByID(ctx context.Context, id string) (core.Quote, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableQuotes),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return core.Quote{}, fmt.Errorf("quotes.getItem: %w", err)
	}

	if out.Item == nil {
		return core.Quote{}, core.ErrQuoteNotFound
	}

	var item QuoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Quote{}, fmt.Errorf("quotes.unmarshal: %w", err)
	}

	return item.ToCore(), nil
}
