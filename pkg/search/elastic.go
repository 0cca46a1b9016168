package search

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"

	"vidhub.com/pkg/constants"
	"vidhub.com/pkg/mq"
)

// 标题和描述以小写形式存入wildcard字段, 查询时同样小写, 实现大小写无关的子串匹配
const indexMapping = `{
  "mappings": {
    "properties": {
      "id":             {"type": "keyword"},
      "owner_id":       {"type": "keyword"},
      "title_lc":       {"type": "wildcard"},
      "description_lc": {"type": "wildcard"},
      "is_published":   {"type": "boolean"}
    }
  }
}`

// Document 索引中的视频文档
type Document struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	TitleLC       string `json:"title_lc"`
	DescriptionLC string `json:"description_lc"`
	IsPublished   bool   `json:"is_published"`
}

func NewDocument(v *mq.VideoSnapshot) *Document {
	return &Document{
		ID:            v.ID,
		OwnerID:       v.OwnerID,
		TitleLC:       strings.ToLower(v.Title),
		DescriptionLC: strings.ToLower(v.Description),
		IsPublished:   v.IsPublished,
	}
}

// ElasticIndex 视频子串索引
type ElasticIndex struct {
	client *elastic.Client
	index  string
}

func NewElasticIndex(url, index string) (*ElasticIndex, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create elastic client")
	}
	return &ElasticIndex{client: client, index: index}, nil
}

// EnsureIndex 索引不存在时按mapping创建
func (e *ElasticIndex) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.IndexExists(e.index).Do(ctx)
	if err != nil {
		return errors.Wrap(err, "check index")
	}
	if exists {
		return nil
	}
	if _, err = e.client.CreateIndex(e.index).BodyString(indexMapping).Do(ctx); err != nil {
		return errors.Wrap(err, "create index")
	}
	hlog.Infof("created elastic index %s", e.index)
	return nil
}

func (e *ElasticIndex) Upsert(ctx context.Context, doc *Document) error {
	_, err := e.client.Index().Index(e.index).Id(doc.ID).BodyJson(doc).Do(ctx)
	return errors.Wrapf(err, "index video %s", doc.ID)
}

func (e *ElasticIndex) Delete(ctx context.Context, id string) error {
	_, err := e.client.Delete().Index(e.index).Id(id).Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		return errors.Wrapf(err, "delete video %s", id)
	}
	return nil
}

// MatchVideoIDs 已发布且标题或描述包含q的全部视频id, 按id排序, 不做相关性排序
func (e *ElasticIndex) MatchVideoIDs(ctx context.Context, q string) ([]string, error) {
	pattern := WildcardPattern(q)
	query := elastic.NewBoolQuery().
		Filter(elastic.NewTermQuery("is_published", true)).
		Should(
			elastic.NewWildcardQuery("title_lc", pattern),
			elastic.NewWildcardQuery("description_lc", pattern),
		).
		MinimumNumberShouldMatch(1)

	return collectIDs(ctx, constants.SearchPageSize, func(ctx context.Context, after []interface{}) ([]*elastic.SearchHit, error) {
		svc := e.client.Search().
			Index(e.index).
			Query(query).
			Sort("id", true).
			Size(constants.SearchPageSize).
			FetchSource(false)
		if len(after) > 0 {
			svc = svc.SearchAfter(after...)
		}
		res, err := svc.Do(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "search videos")
		}
		if res.Hits == nil {
			return nil, nil
		}
		return res.Hits.Hits, nil
	})
}

// hitPage 取一页命中, after为上一页最后一条命中的排序值
type hitPage func(ctx context.Context, after []interface{}) ([]*elastic.SearchHit, error)

// collectIDs 用search_after翻页直到取尽全部命中
func collectIDs(ctx context.Context, pageSize int, next hitPage) ([]string, error) {
	ids := make([]string, 0)
	var after []interface{}
	for {
		hits, err := next(ctx, after)
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			ids = append(ids, hit.Id)
		}
		if len(hits) < pageSize {
			return ids, nil
		}
		after = hits[len(hits)-1].Sort
	}
}

// HandleVideoEvent 根据视频事件同步索引
func (e *ElasticIndex) HandleVideoEvent(ctx context.Context, event *mq.VideoEvent) error {
	switch event.Type {
	case mq.VideoDeleted:
		return e.Delete(ctx, event.Video.ID)
	case mq.VideoPublished, mq.VideoUpdated, mq.VideoVisibility:
		return e.Upsert(ctx, NewDocument(event.Video))
	default:
		hlog.CtxWarnf(ctx, "ignore unknown video event type %s", event.Type)
		return nil
	}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// WildcardPattern 把用户输入转换为小写的包含匹配模式, 转义通配符
func WildcardPattern(q string) string {
	return "*" + wildcardEscaper.Replace(strings.ToLower(q)) + "*"
}
