package sqlinline

const QInsertDonation = `--sql cdd77003-b003-4166-b42c-68c47d129e66
insert into donations (donor_id, project_id, amount, date, status, reference)
values ($1::bigint, $2::bigint, $3::bigint, $4::timestamptz, $5::text, $6::text)
returning id;
`

const QSelectDonationByID = `--sql 6ea47214-7938-4121-a818-89dfec30410a
select id, donor_id, project_id, amount, date, status, reference
from donations
where id = $1::bigint
  and (not $2::bool or donor_id = $3::bigint)
limit 1;
`

const QListDonations = `--sql ed659614-ca79-428e-a189-3dda301b962e
select id, donor_id, project_id, amount, date, status, reference
from donations
where (not $1::bool or donor_id = $2::bigint)
  and ($3::bigint = 0 or project_id = $3::bigint)
order by id;
`

const QUpdateDonationProject = `--sql 762e04d7-3d2f-4a05-a2db-60879f17d0b2
update donations set project_id = $2::bigint where id = $1::bigint;
`

const QDeleteDonation = `--sql 2b06bd7a-e1e8-47c7-976d-264a19cb1308
delete from donations where id = $1::bigint;
`
