package sqlinline

// QSelectCampaignStats reads the single campaign row. Amounts are stored in centavos.
const QSelectCampaignStats = `--sql 5c1f7a92-38d4-4e0b-9a61-7d2b0c4e8f13
select participants, raised_minor, goal_minor, updated_at
from campaign_stats
order by updated_at desc
limit 1;
`

// QInsertCampaignStats appends a snapshot; the newest row wins on read.
const QInsertCampaignStats = `--sql 9e4b2d17-6a3c-4f85-b0d2-1c7e5a9f3b64
insert into campaign_stats (participants, raised_minor, goal_minor, updated_at)
values ($1, $2, $3, now())
returning participants, raised_minor, goal_minor, updated_at;
`

// QRecordCampaignDonation copies the newest snapshot with one more participant
// and $1 centavos added. It inserts nothing while the table is empty.
const QRecordCampaignDonation = `--sql 2d8a6f40-c1b9-4e37-8f5a-6b0e9d4c7a21
insert into campaign_stats (participants, raised_minor, goal_minor, updated_at)
select participants + 1, raised_minor + $1, goal_minor, now()
from campaign_stats
order by updated_at desc
limit 1
returning participants, raised_minor, goal_minor, updated_at;
`
