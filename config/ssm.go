package config

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// LoadSSMParameters copies every parameter under prefix into c, keyed by the
// last path segment. Values already present in c are kept, so the process
// environment overrides Parameter Store. It returns how many keys were added.
func LoadSSMParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string, c map[string]string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	added := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return added, fmt.Errorf("read parameters under %s: %w", prefix, err)
		}

		for _, parameter := range page.Parameters {
			key := path.Base(aws.ToString(parameter.Name))
			if key == "" || key == "/" || key == "." {
				continue
			}
			if existing, ok := c[key]; ok && existing != "" {
				continue
			}
			c[key] = aws.ToString(parameter.Value)
			added++
		}
	}
	return added, nil
}
