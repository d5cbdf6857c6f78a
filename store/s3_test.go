package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	err     error
	lastPut *s3.PutObjectInput
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.lastPut = in
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3State(t *testing.T) {
	ctx := context.Background()

	t.Run("save, load and delete", func(t *testing.T) {
		fake := newFakeS3()
		state := NewS3State(fake, "artifacts", "foodpath")

		require.NoError(t, state.Save(ctx, "sess/cart", []byte(`[]`)))
		assert.Contains(t, fake.objects, "artifacts/foodpath/sess/cart.json")
		assert.Equal(t, "application/json", aws.ToString(fake.lastPut.ContentType))

		b, err := state.Load(ctx, "sess/cart")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), b)

		require.NoError(t, state.Delete(ctx, "sess/cart"))
		_, err = state.Load(ctx, "sess/cart")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("backend failure is wrapped", func(t *testing.T) {
		fake := newFakeS3()
		fake.err = errors.New("access denied")
		state := NewS3State(fake, "artifacts", "")

		_, err := state.Load(ctx, "cart")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "access denied")
	})
}
