package repositories

import (
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/checkmarble/llmberjack"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/riverqueue/river"
)

type options struct {
	riverClient     *river.Client[pgx.Tx]
	llmClient       *llmberjack.Llmberjack
	llmModel        string
	speechClient    *speech.Client
	audioBucketUrl  string
	synthesisUrl    string
	speechTimeout   time.Duration
	channelUrls     map[models.ChannelType]string
	dispatchTimeout time.Duration
}

type Option func(*options)

func WithRiverClient(client *river.Client[pgx.Tx]) Option {
	return func(o *options) {
		o.riverClient = client
	}
}

func WithLlmClient(client *llmberjack.Llmberjack, model string) Option {
	return func(o *options) {
		o.llmClient = client
		o.llmModel = model
	}
}

func WithSpeech(client *speech.Client, audioBucketUrl, synthesisUrl string, timeout time.Duration) Option {
	return func(o *options) {
		o.speechClient = client
		o.audioBucketUrl = audioBucketUrl
		o.synthesisUrl = synthesisUrl
		o.speechTimeout = timeout
	}
}

func WithDispatch(channelUrls map[models.ChannelType]string, timeout time.Duration) Option {
	return func(o *options) {
		o.channelUrls = channelUrls
		o.dispatchTimeout = timeout
	}
}

// Repositories bundles every repository behind a single constructor, so that
// process entrypoints wire them once and hand them to the usecases.
type Repositories struct {
	ExecutorGetter           ExecutorGetter
	LurelabDbRepository      *LurelabDbRepository
	TaskQueueRepository      TaskQueueRepository
	GenerativeTextRepository *GenerativeTextRepository
	SpeechRepository         *SpeechRepository
	DispatchRepository       *DispatchRepository
	BlobRepository           BlobRepository
}

func NewRepositories(pool *pgxpool.Pool, opts ...Option) Repositories {
	o := options{
		speechTimeout:   10 * time.Second,
		dispatchTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	blobRepository := NewBlobRepository()

	repositories := Repositories{
		ExecutorGetter:      NewExecutorGetter(pool),
		LurelabDbRepository: NewLurelabDbRepository(),
		BlobRepository:      blobRepository,
		DispatchRepository:  NewDispatchRepository(o.channelUrls, o.dispatchTimeout),
	}

	if o.riverClient != nil {
		repositories.TaskQueueRepository = NewTaskQueueRepository(o.riverClient)
	}
	if o.llmClient != nil {
		repositories.GenerativeTextRepository = NewGenerativeTextRepository(o.llmClient, o.llmModel)
	}
	if o.speechClient != nil {
		repositories.SpeechRepository = NewSpeechRepository(
			o.speechClient,
			blobRepository,
			o.audioBucketUrl,
			o.synthesisUrl,
			o.speechTimeout,
		)
	}

	return repositories
}
